package auth

import "golang.org/x/crypto/bcrypt"

// HashCost returns cost when bcrypt accepts it and bcrypt.DefaultCost
// otherwise. The second result is false when cost was replaced.
func HashCost(cost int) (int, bool) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost, false
	}
	return cost, true
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	cost, _ = HashCost(cost)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
