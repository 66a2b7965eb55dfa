package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordService hashes and verifies doctor credentials.
type PasswordService interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
	// VerifyDummy spends the same work as Verify against a throwaway hash, so a
	// lookup miss takes as long as a wrong password.
	VerifyDummy(plain string)
}

type passwordService struct {
	cost      int
	dummyHash []byte
}

func NewPasswordService(cost int) (PasswordService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("doctor-portal-dummy-secret"), cost)
	if err != nil {
		return nil, err
	}
	return &passwordService{cost: cost, dummyHash: dummy}, nil
}

func (s *passwordService) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *passwordService) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *passwordService) VerifyDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plain))
}
