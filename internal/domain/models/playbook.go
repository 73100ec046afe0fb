package models

// Playbook is the fixed safety guidance attached to a threat category
type Playbook struct {
	Immediate  []string `json:"immediate"`
	Preventive []string `json:"preventive"`
}

// playbooks maps every threat category to its guidance. The mapping is
// exhaustive over ThreatTypes(); Guidance falls back to the
// Suspicious Message entry only for unknown values.
var playbooks = map[ThreatType]Playbook{
	ThreatTypePhishing: {
		Immediate: []string{
			"Do not reply or provide any information",
			"Report the message to the impersonated organization",
			"Delete the message from all devices",
		},
		Preventive: []string{
			"Check sender addresses carefully before acting",
			"Navigate to sites directly instead of via message links",
		},
	},
	ThreatTypeMalware: {
		Immediate: []string{
			"Do not open the attachment or installer again",
			"Disconnect the device from the network",
			"Run a full antivirus scan",
		},
		Preventive: []string{
			"Only install software from trusted sources",
			"Keep your operating system and antivirus updated",
		},
	},
	ThreatTypeMaliciousLink: {
		Immediate: []string{
			"Do NOT click the link again",
			"Disconnect internet if device behaves suspiciously",
			"Run antivirus scan immediately",
		},
		Preventive: []string{
			"Avoid clicking unknown links",
			"Verify URLs before visiting",
			"Keep antivirus updated",
		},
	},
	ThreatTypeCredentialTheft: {
		Immediate: []string{
			"Change all passwords immediately",
			"Enable two-factor authentication",
			"Log out from all devices",
		},
		Preventive: []string{
			"Never share OTP or passwords",
			"Use a password manager",
			"Avoid logging into unknown sites",
		},
	},
	ThreatTypeSocialEngineering: {
		Immediate: []string{
			"Do not respond to the sender",
			"Block and report the account",
			"Avoid sharing personal information",
		},
		Preventive: []string{
			"Be cautious of urgent requests",
			"Verify identity before sharing information",
		},
	},
	ThreatTypeSuspiciousMessage: {
		Immediate: []string{
			"Do not interact with the message",
			"Verify sender authenticity",
		},
		Preventive: []string{
			"Stay cautious of unknown communications",
		},
	},
}

func init() {
	// The guidance table must cover every category; a gap here is a
	// programming error, not a runtime condition.
	for _, t := range ThreatTypes() {
		if _, ok := playbooks[t]; !ok {
			panic("models: missing playbook for threat type " + string(t))
		}
	}
}

// Guidance returns the playbook for a threat category. Unknown values
// receive the Suspicious Message guidance.
func Guidance(t ThreatType) Playbook {
	if pb, ok := playbooks[t]; ok {
		return pb
	}
	return playbooks[ThreatTypeSuspiciousMessage]
}
