package models

// IntegrityStatus is the verification outcome for a digest algorithm
type IntegrityStatus string

const (
	IntegrityValid    IntegrityStatus = "valid"
	IntegrityTampered IntegrityStatus = "tampered"
)

// EvidenceDigest is the dual-algorithm digest computed over the canonical
// evidence string at submission time. Both digests cover the identical
// input; requiring both to match defends against a collision in either
// algorithm alone.
type EvidenceDigest struct {
	SHA256 string `json:"sha256" bson:"sha256"`
	MD5    string `json:"md5" bson:"md5"`
}

// AlgorithmVerification is the per-algorithm result of a verification pass
type AlgorithmVerification struct {
	Status IntegrityStatus `json:"status"`
	Hash   string          `json:"hash"`
}

// IntegrityReport is the structured outcome of verifying stored evidence
// against its stored digest. A tampered result is a normal outcome, not
// an error.
type IntegrityReport struct {
	Overall IntegrityStatus       `json:"integrity"`
	SHA256  AlgorithmVerification `json:"sha256"`
	MD5     AlgorithmVerification `json:"md5"`
}
