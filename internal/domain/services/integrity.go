package services

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"

	"cyberguard-lab/internal/domain/models"
)

// BuildEvidenceString builds the canonical hash input from incident
// fields. The concatenation order and the absence of a delimiter are
// part of the stored digest contract and must never change, or every
// previously stored digest reads as tampered.
func BuildEvidenceString(platform, incidentDate, narrative, iocIndicators string) string {
	return platform + incidentDate + narrative + iocIndicators
}

// ComputeEvidenceDigest computes the dual-algorithm digest over the
// canonical evidence string. MD5 is kept alongside SHA-256 for
// compatibility with records hashed by earlier tooling, not as a
// security primitive.
func ComputeEvidenceDigest(evidence string) models.EvidenceDigest {
	sha := sha256.Sum256([]byte(evidence))
	md := md5.Sum([]byte(evidence))
	return models.EvidenceDigest{
		SHA256: hex.EncodeToString(sha[:]),
		MD5:    hex.EncodeToString(md[:]),
	}
}

// VerifyEvidenceDigest recomputes the digest from current field values
// and compares each algorithm against the stored digest. The report
// carries the recalculated hashes so an analyst can see what the
// current data hashes to.
func VerifyEvidenceDigest(platform, incidentDate, narrative, iocIndicators string, stored models.EvidenceDigest) models.IntegrityReport {
	recalculated := ComputeEvidenceDigest(BuildEvidenceString(platform, incidentDate, narrative, iocIndicators))

	shaStatus := models.IntegrityTampered
	if recalculated.SHA256 == stored.SHA256 {
		shaStatus = models.IntegrityValid
	}
	mdStatus := models.IntegrityTampered
	if recalculated.MD5 == stored.MD5 {
		mdStatus = models.IntegrityValid
	}

	overall := models.IntegrityTampered
	if shaStatus == models.IntegrityValid && mdStatus == models.IntegrityValid {
		overall = models.IntegrityValid
	}

	return models.IntegrityReport{
		Overall: overall,
		SHA256:  models.AlgorithmVerification{Status: shaStatus, Hash: recalculated.SHA256},
		MD5:     models.AlgorithmVerification{Status: mdStatus, Hash: recalculated.MD5},
	}
}
