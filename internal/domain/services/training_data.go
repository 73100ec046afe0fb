package services

import "cyberguard-lab/internal/domain/models"

// trainingExample is one labeled text sample for the threat model
type trainingExample struct {
	text  string
	label models.ThreatType
}

// threatTrainingCorpus is the seed corpus used to train the initial
// threat model when no persisted artifact exists. The hybrid rules in
// ClassifierService cover anything the model scores below the trust
// threshold.
var threatTrainingCorpus = []trainingExample{
	// Phishing
	{"Click here to claim your prize and login to your account", models.ThreatTypePhishing},
	{"Your account has been suspended. Please verify your identity at this link", models.ThreatTypePhishing},
	{"Verify your bank account details immediately to avoid lockout", models.ThreatTypePhishing},
	{"Login to secure your email and prevent unauthorized access", models.ThreatTypePhishing},

	// Malware
	{"Download this attachment to view the invoice", models.ThreatTypeMalware},
	{"Install this software to update your drivers and fix bugs", models.ThreatTypeMalware},
	{"Detected virus on your computer. Click to download cleaner", models.ThreatTypeMalware},
	{"Run this .exe file to get free premium features", models.ThreatTypeMalware},

	// Malicious Link
	{"Check out this cool website: http://fake-site.com/login", models.ThreatTypeMaliciousLink},
	{"Visit this URL to win a free iPhone: https://malicious-url.tk", models.ThreatTypeMaliciousLink},
	{"Click here for a surprise: bit.ly/untrusted-link", models.ThreatTypeMaliciousLink},

	// Credential Theft
	{"Enter your password here to continue using the service", models.ThreatTypeCredentialTheft},
	{"Please provide your OTP to confirm the transaction", models.ThreatTypeCredentialTheft},
	{"We need your login credentials for maintenance purposes", models.ThreatTypeCredentialTheft},

	// Social Engineering
	{"Hi, I'm from technical support. I need access to your computer", models.ThreatTypeSocialEngineering},
	{"I'm your boss. Please send me the gift card codes immediately", models.ThreatTypeSocialEngineering},
	{"Urgent help needed! Can you transfer money to this account?", models.ThreatTypeSocialEngineering},

	// Suspicious Message
	{"Hello, how are you? Just checking in.", models.ThreatTypeSuspiciousMessage},
	{"Are you available for a quick chat today?", models.ThreatTypeSuspiciousMessage},
	{"Check your mail for the latest updates on our project", models.ThreatTypeSuspiciousMessage},
}
