package pkg

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is above bcrypt.DefaultCost, login is rare enough to afford it.
const passwordHashCost = 14

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return BytesToString(bytes), err
}

// CheckPasswordHash also reports false for malformed hashes.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
