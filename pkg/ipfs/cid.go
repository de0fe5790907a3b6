package ipfs

import "regexp"

var (
	cidV0Pattern = regexp.MustCompile(`^Qm[1-9A-HJ-NP-Za-km-z]{44}$`)
	cidV1Pattern = regexp.MustCompile(`^bafy[a-z2-7]{55}$`)
)

// IsValidCID accepts base58 v0 CIDs and base32 dag-pb v1 CIDs
func IsValidCID(cid string) bool {
	return cidV0Pattern.MatchString(cid) || cidV1Pattern.MatchString(cid)
}
