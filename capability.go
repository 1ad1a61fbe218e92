package arbor

// HashAlgo represents a supported hashing algorithm.
type HashAlgo string

const (
	// HashArgon2 uses Argon2id for password hashing (salted, slow).
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt for password hashing (salted, slow).
	HashBcrypt HashAlgo = "bcrypt"

	// HashSHA256 uses SHA-256 for deterministic hashing (fast, no salt).
	// Use for fingerprinting/identification, NOT for passwords.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic hashing (fast, no salt).
	HashSHA512 HashAlgo = "sha512"
)

// MaskType represents a known data format with masking rules.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-... -> 550e8400-****-****-****-************
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82**************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// IsValidHashAlgo returns true if the algorithm has a builtin hasher.
func IsValidHashAlgo(algo HashAlgo) bool {
	_, ok := builtinHashers[algo]
	return ok
}

// IsValidMaskType returns true if the type has a builtin masker.
func IsValidMaskType(mt MaskType) bool {
	_, ok := builtinMaskers[mt]
	return ok
}
