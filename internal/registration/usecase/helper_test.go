package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mrasouli/otpreg/internal/pkg/config"
	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/pkg/hash"
	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/jwt"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/pkg/validator"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeAccountDB struct {
	byMobile map[string]*entity.Account
	byID     map[int64]*entity.Account
	audits   []entity.AuditLog
	failGet  error
}

func newFakeAccountDB() *fakeAccountDB {
	return &fakeAccountDB{
		byMobile: map[string]*entity.Account{},
		byID:     map[int64]*entity.Account{},
	}
}

func (f *fakeAccountDB) GetAccountByMobile(_ context.Context, mobile string) (*entity.Account, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	acc, ok := f.byMobile[mobile]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeAccountDB) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	acc, ok := f.byID[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeAccountDB) FindOrCreateAccount(_ context.Context, in entity.NewAccount) (*entity.Account, error) {
	if acc, ok := f.byMobile[in.Mobile]; ok {
		cp := *acc
		return &cp, nil
	}

	acc := &entity.Account{
		ID:       in.ID,
		Mobile:   in.Mobile,
		FullName: in.FullName,
		Password: in.Password,
	}
	f.byMobile[in.Mobile] = acc
	f.byID[in.ID] = acc

	cp := *acc
	return &cp, nil
}

func (f *fakeAccountDB) CreateAuditLog(_ context.Context, in entity.AuditLog) error {
	f.audits = append(f.audits, in)
	return nil
}

// fakeOtpRepo emulates the conditional SQL updates: consume and expire only
// touch records that are still live.
type fakeOtpRepo struct {
	clock       *fakeClock
	accounts    *fakeAccountDB
	records     []*entity.OtpRecord
	failConsume error
}

func (f *fakeOtpRepo) GetLatestOtpByAccount(_ context.Context, accountID int64, purpose entity.OtpPurpose) (*entity.OtpRecord, error) {
	var latest *entity.OtpRecord
	for _, r := range f.records {
		if r.AccountID == accountID && r.Purpose == purpose {
			if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
				latest = r
			}
		}
	}
	if latest == nil {
		return nil, goerror.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeOtpRepo) GetLiveOtpByToken(_ context.Context, token string, ttl time.Duration) (*entity.OtpRecord, error) {
	now := f.clock.Now()
	for _, r := range f.records {
		if r.Token == token && r.Live(now, ttl) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeOtpRepo) NewOtpIssuance(_ context.Context, rec entity.OtpRecord) error {
	for _, r := range f.records {
		if r.AccountID == rec.AccountID && r.Purpose == rec.Purpose && r.UsedAt == nil {
			r.Expired = true
		}
	}
	cp := rec
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeOtpRepo) ConsumeOtp(_ context.Context, in entity.ConsumeOtp) error {
	if f.failConsume != nil {
		return f.failConsume
	}
	for _, r := range f.records {
		if r.ID == in.RecordID && r.UsedAt == nil && !r.Expired {
			used := in.UsedAt
			r.UsedAt = &used
			r.Expired = true

			if f.accounts != nil {
				if acc, ok := f.accounts.byID[in.AccountID]; ok && acc.VerifiedAt == nil {
					verified := in.UsedAt
					acc.VerifiedAt = &verified
				}
			}
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeOtpRepo) ExpireOtp(_ context.Context, recordID int64) error {
	for _, r := range f.records {
		if r.ID == recordID && r.UsedAt == nil {
			r.Expired = true
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeOtpRepo) find(recordID int64) *entity.OtpRecord {
	for _, r := range f.records {
		if r.ID == recordID {
			return r
		}
	}
	return nil
}

type fakeMessaging struct {
	issued   []OtpIssuedEvent
	verified []AccountVerifiedEvent
	err      error
}

func (f *fakeMessaging) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.issued = append(f.issued, msg)
	return nil
}

func (f *fakeMessaging) PublishAccountVerified(_ context.Context, msg AccountVerifiedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.verified = append(f.verified, msg)
	return nil
}

// fakeLimiter counts attempts per key the way the sliding window does,
// including rejected ones.
type fakeLimiter struct {
	counts map[string]int64
	err    error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int64, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key] <= limit, nil
}

type fakeDelivery struct {
	sent []entity.OtpRecord
	err  error
}

func (f *fakeDelivery) Deliver(_ context.Context, _ entity.Destination, rec *entity.OtpRecord) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, *rec)
	return nil
}

type fakeCodes struct {
	code string
}

func (f *fakeCodes) Generate() string {
	if f.code == "" {
		return "123456"
	}
	return f.code
}

type fakeTokens struct {
	n int
}

func (f *fakeTokens) Generate() string {
	f.n++
	return fmt.Sprintf("%060d", f.n)
}

type fakeNumberID struct {
	n int64
}

func (f *fakeNumberID) Generate() int64 {
	f.n++
	return f.n
}

const testConfigYAML = `
modules:
  registration:
    verify_max_attempts: 2
    verify_window_seconds: 60
`

type fixture struct {
	uc       *Usecase
	otp      *OtpService
	db       *fakeAccountDB
	otpRepo  *fakeOtpRepo
	delivery *fakeDelivery
	msg      *fakeMessaging
	limiter  *fakeLimiter
	clock    *fakeClock
	jwt      jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := &fakeClock{t: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)}
	db := newFakeAccountDB()
	otpRepo := &fakeOtpRepo{clock: clk, accounts: db}
	delivery := &fakeDelivery{}
	msg := &fakeMessaging{}
	limiter := &fakeLimiter{}
	ins := instrument.NewNoop()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "otpreg-test",
		Audiences: []string{"otpreg-api"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	otp := NewOtpService(OtpServiceDependency{
		Repo:       otpRepo,
		Delivery:   delivery,
		Codes:      &fakeCodes{},
		Tokens:     &fakeTokens{},
		UID:        &fakeNumberID{n: 1000},
		Clock:      clk,
		TTL:        120 * time.Second,
		Cooldown:   120 * time.Second,
		Instrument: ins,
	})

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: msg,
		Otp:           otp,
		Limiter:       limiter,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        hash.NewBcrypt(4, "test-pepper"),
		UID:           &fakeNumberID{},
		Clock:         clk,
		JWT:           signer,
		Instrument:    ins,
	})

	return &fixture{
		uc:       uc,
		otp:      otp,
		db:       db,
		otpRepo:  otpRepo,
		delivery: delivery,
		msg:      msg,
		limiter:  limiter,
		clock:    clk,
		jwt:      signer,
	}
}

func mustRegister(t *testing.T, f *fixture, mobile string) *RegisterOutput {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		FullName:             "Test User",
		Mobile:               mobile,
		Password:             "Secret123!",
		PasswordConfirmation: "Secret123!",
		IP:                   "203.0.113.7",
		Agent:                "test-agent",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return out
}
