package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
)

const (
	promoCodeMin   = 10000
	promoCodeRange = 90000
)

type PromoService interface {
	GenerateCode() string
}

type promoService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPromoService - seeds the generator from crypto/rand.
func NewPromoService() (PromoService, error) {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}

	return NewPromoServiceWithSeed(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:])), nil
}

func NewPromoServiceWithSeed(seed1, seed2 uint64) PromoService {
	return &promoService{
		rnd: rand.New(rand.NewPCG(seed1, seed2)), //nolint: gosec // promo codes are not secrets
	}
}

// GenerateCode - returns a five digit code drawn uniformly from 10000..99999.
func (that *promoService) GenerateCode() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return strconv.Itoa(promoCodeMin + that.rnd.IntN(promoCodeRange))
}
