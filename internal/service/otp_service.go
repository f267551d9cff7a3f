package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"taraas/config"
	"taraas/internal/clock"
	"taraas/internal/models"
	"taraas/internal/repository"
	"taraas/pkg/mailer"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrOtpThrottled    = errors.New("please wait before requesting a new code")
	ErrOtpDailyLimit   = errors.New("daily code limit reached, try again tomorrow")
	ErrOtpNotRequested = errors.New("no code requested for this email")
	ErrOtpExpired      = errors.New("code has expired, request a new one")
	ErrOtpLocked       = errors.New("too many failed attempts, request a new code")
)

// OtpService issues and verifies single-use email codes. Per-email operations
// are serialized: the attempt and daily counters are read-modify-write.
type OtpService struct {
	repo   *repository.OtpRepository
	mailer mailer.Mailer
	cfg    config.OtpConfig
	clock  clock.Clock
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOtpService(repo *repository.OtpRepository, m mailer.Mailer, cfg config.OtpConfig, clk clock.Clock, log *zap.Logger) *OtpService {
	return &OtpService{
		repo:   repo,
		mailer: m,
		cfg:    cfg,
		clock:  clk,
		log:    log.Named("otp"),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *OtpService) emailLock(email string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[email]
	if !ok {
		l = &sync.Mutex{}
		s.locks[email] = l
	}
	return l
}

// Issue generates a 6-digit code for the email, stores only its bcrypt hash,
// and dispatches the plaintext out-of-band. Enforces the resend interval and
// the daily issuance limit.
func (s *OtpService) Issue(email string) error {
	l := s.emailLock(email)
	l.Lock()
	defer l.Unlock()

	now := s.clock.Now()

	existing, err := s.repo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		if now.Sub(existing.LastSentAt) < s.cfg.ResendInterval {
			return ErrOtpThrottled
		}
		if existing.DailyCount >= s.cfg.DailyLimit && sameDay(existing.LastSentAt, now) {
			return ErrOtpDailyLimit
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	rec := existing
	if rec == nil {
		rec = &models.OtpRecord{Email: email}
	}
	dailyCount := 1
	if existing != nil && sameDay(existing.LastSentAt, now) {
		dailyCount = existing.DailyCount + 1
	}
	rec.HashedOtp = string(hash)
	rec.ExpiryTime = now.Add(s.cfg.Expiry)
	rec.AttemptCount = 0
	rec.DailyCount = dailyCount
	rec.LastSentAt = now

	if err := s.repo.Save(rec); err != nil {
		return err
	}

	// Delivery is fire-and-forget: a mail failure never unwinds the record.
	body := fmt.Sprintf("Your One-Time Password (OTP) is %s.\n\nThis OTP is valid for %d minutes.\n\nIf you did not request this, please ignore this email.\n— Team Taraas",
		code, int(s.cfg.Expiry.Minutes()))
	if err := s.mailer.Send(email, "Your OTP for Taraas", body); err != nil {
		s.log.Error("otp mail dispatch failed", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// Verify checks the candidate code. A wrong code increments the attempt
// counter and returns (false, nil); throttle, expiry, lockout, and missing
// records are distinct errors so callers can branch.
func (s *OtpService) Verify(email, candidate string) (bool, error) {
	l := s.emailLock(email)
	l.Lock()
	defer l.Unlock()

	rec, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrOtpNotRequested
		}
		return false, err
	}

	now := s.clock.Now()
	if now.After(rec.ExpiryTime) {
		// Record stays: the caller may re-issue.
		return false, ErrOtpExpired
	}
	if rec.AttemptCount >= s.cfg.MaxAttempts {
		// Hard lockout: the record is gone, counters included.
		if err := s.repo.DeleteByEmail(email); err != nil {
			return false, err
		}
		return false, ErrOtpLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.HashedOtp), []byte(candidate)) == nil {
		// Single-use: consume on success.
		if err := s.repo.DeleteByEmail(email); err != nil {
			return false, err
		}
		return true, nil
	}

	rec.AttemptCount++
	if err := s.repo.Save(rec); err != nil {
		return false, err
	}
	return false, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
