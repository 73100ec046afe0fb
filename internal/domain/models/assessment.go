package models

// RiskLevel represents the coarse triage bucket derived from the risk score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// RiskLevelForScore maps a clamped risk score to its triage bucket.
// Boundaries: 25 is still LOW, 60 is still MEDIUM, 61 is HIGH.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score <= 25:
		return RiskLevelLow
	case score <= 60:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// RiskAssessment is the outcome of scoring one incident submission
type RiskAssessment struct {
	Score   int       `json:"score" bson:"score"`
	Level   RiskLevel `json:"level" bson:"level"`
	Reasons []string  `json:"reasons" bson:"reasons"`
}

// ThreatType is the closed set of threat categories the classifier emits
type ThreatType string

const (
	ThreatTypePhishing          ThreatType = "Phishing"
	ThreatTypeMalware           ThreatType = "Malware"
	ThreatTypeMaliciousLink     ThreatType = "Malicious Link"
	ThreatTypeCredentialTheft   ThreatType = "Credential Theft"
	ThreatTypeSocialEngineering ThreatType = "Social Engineering"
	ThreatTypeSuspiciousMessage ThreatType = "Suspicious Message"
)

// ThreatTypes lists every category in a fixed order
func ThreatTypes() []ThreatType {
	return []ThreatType{
		ThreatTypePhishing,
		ThreatTypeMalware,
		ThreatTypeMaliciousLink,
		ThreatTypeCredentialTheft,
		ThreatTypeSocialEngineering,
		ThreatTypeSuspiciousMessage,
	}
}

// Valid reports whether t is a known threat category
func (t ThreatType) Valid() bool {
	switch t {
	case ThreatTypePhishing, ThreatTypeMalware, ThreatTypeMaliciousLink,
		ThreatTypeCredentialTheft, ThreatTypeSocialEngineering, ThreatTypeSuspiciousMessage:
		return true
	}
	return false
}

// ThreatClassification is a predicted threat category with its confidence
type ThreatClassification struct {
	Type       ThreatType `json:"type" bson:"type"`
	Confidence float64    `json:"confidence" bson:"confidence"`
}
