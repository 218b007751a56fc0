package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor used for every stored hash.
const bcryptCost = 12

// dummyHash is a bcrypt hash of a throwaway value. Login verifies against
// it when no user matches the email, so a lookup miss and a wrong password
// cost the same amount of work.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword hashes a plaintext password with bcrypt (cost 12).
// A hashing failure is fatal to the registration attempt; callers must
// surface it as a server error, never skip it.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnPasswordCheck runs a bcrypt comparison against a fixed dummy hash
// and discards the result. Called on the no-such-user login path to keep
// its timing in line with the hash-mismatch path.
func BurnPasswordCheck(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
