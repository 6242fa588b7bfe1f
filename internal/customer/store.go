// Package customer tracks the authenticated shopper of a session.
//
// Registration is phone based: Register creates the identity and the profile
// but leaves the session anonymous until VerifyOTP succeeds.
package customer

import (
	"context"
	"errors"
	"regexp"
	"strings"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
)

const (
	TokenKey        = "customer_token"
	PendingPhoneKey = "pending_phone"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,}$`)

// Auth is the slice of the commerce API used by the customer store.
type Auth interface {
	Authenticate(ctx context.Context, provider string, credentials map[string]string) (string, error)
	Register(ctx context.Context, provider string, credentials map[string]string) (string, error)
	Logout(ctx context.Context, token string) error
	CreateCustomer(ctx context.Context, registrationToken string, in medusa.CreateCustomerRequest) (*medusa.Customer, error)
	RetrieveCustomer(ctx context.Context, token string) (*medusa.Customer, error)
}

type Config struct {
	EmailProvider string
	PhoneProvider string
}

type RegisterInput struct {
	Phone     string `json:"phone" validate:"required,e164"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// State is a read-only view of the store.
type State struct {
	Customer        *medusa.Customer `json:"customer"`
	IsAuthenticated bool             `json:"isAuthenticated"`
	Loading         bool             `json:"loading"`
	LastError       string           `json:"lastError,omitempty"`
	PendingPhone    string           `json:"pendingPhone,omitempty"`
}

// Store is the customer state of one session. It is not safe for concurrent use.
type Store struct {
	auth Auth
	kv   kv.Store
	cfg  Config
	logg *logger.Logger

	restored     bool
	token        string
	customer     *medusa.Customer
	loading      bool
	lastError    string
	pendingPhone string
}

func NewStore(auth Auth, store kv.Store, cfg Config, logg *logger.Logger) (*Store, error) {
	if auth == nil {
		return nil, errors.New("auth client required")
	}
	if store == nil {
		return nil, errors.New("kv store required")
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "emailpass"
	}
	if cfg.PhoneProvider == "" {
		cfg.PhoneProvider = "phone"
	}
	return &Store{auth: auth, kv: store, cfg: cfg, logg: logg}, nil
}

func (s *Store) Customer() *medusa.Customer { return s.customer }

func (s *Store) IsAuthenticated() bool { return s.customer != nil }

func (s *Store) Loading() bool { return s.loading }

func (s *Store) LastError() string { return s.lastError }

func (s *Store) PendingPhone() string { return s.pendingPhone }

func (s *Store) State() State {
	return State{
		Customer:        s.customer,
		IsAuthenticated: s.IsAuthenticated(),
		Loading:         s.loading,
		LastError:       s.lastError,
		PendingPhone:    s.pendingPhone,
	}
}

// Initialize restores the session and fetches the profile if one is active.
func (s *Store) Initialize(ctx context.Context) {
	s.FetchCustomer(ctx)
}

// Login authenticates with a password. Identifiers that look like phone
// numbers use the phone provider, everything else the email provider.
func (s *Store) Login(ctx context.Context, identifier, password string) error {
	s.restore(ctx)
	s.begin()
	defer s.end()

	identifier = strings.TrimSpace(identifier)
	provider, field := s.cfg.EmailProvider, "email"
	if IsPhone(identifier) {
		provider, field = s.cfg.PhoneProvider, "phone"
	}

	token, err := s.auth.Authenticate(ctx, provider, map[string]string{field: identifier, "password": password})
	if err != nil {
		return s.fail(ctx, "customer.login_failed", err)
	}
	if err := s.setToken(ctx, token); err != nil {
		return s.fail(ctx, "customer.persist_token_failed", err)
	}
	if err := s.loadProfile(ctx); err != nil {
		return s.fail(ctx, "customer.fetch_failed", err)
	}
	return nil
}

// Register creates a phone identity and its customer profile. The session
// stays anonymous with the phone pending verification.
func (s *Store) Register(ctx context.Context, in RegisterInput) error {
	s.restore(ctx)
	s.begin()
	defer s.end()

	creds := map[string]string{"phone": in.Phone, "password": in.Password}
	if in.Email != "" {
		creds["email"] = in.Email
	}
	regToken, err := s.auth.Register(ctx, s.cfg.PhoneProvider, creds)
	if err != nil {
		return s.fail(ctx, "customer.register_failed", err)
	}

	_, err = s.auth.CreateCustomer(ctx, regToken, medusa.CreateCustomerRequest{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	})
	if err != nil {
		return s.fail(ctx, "customer.create_failed", err)
	}

	s.pendingPhone = in.Phone
	if err := s.kv.Set(ctx, PendingPhoneKey, in.Phone, 0); err != nil {
		return s.fail(ctx, "customer.persist_pending_failed", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist pending phone"))
	}
	return nil
}

// VerifyOTP completes phone registration and activates the session.
func (s *Store) VerifyOTP(ctx context.Context, phone, otp string) error {
	s.restore(ctx)
	s.begin()
	defer s.end()

	token, err := s.auth.Authenticate(ctx, s.cfg.PhoneProvider, map[string]string{"phone": phone, "otp": otp})
	if err != nil {
		return s.fail(ctx, "customer.verify_otp_failed", err)
	}
	if err := s.setToken(ctx, token); err != nil {
		return s.fail(ctx, "customer.persist_token_failed", err)
	}

	// the phone stays pending until the profile is loaded
	if err := s.loadProfile(ctx); err != nil {
		return s.fail(ctx, "customer.fetch_failed", err)
	}
	s.pendingPhone = ""
	if err := s.kv.Del(ctx, PendingPhoneKey); err != nil {
		s.warn(ctx, "customer.clear_pending_failed", err)
	}
	return nil
}

// Logout ends the backend session. Local state is cleared even when the
// backend call fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.restore(ctx)
	s.begin()
	defer s.end()

	var logoutErr error
	if s.token != "" {
		logoutErr = s.auth.Logout(ctx, s.token)
	}

	s.customer = nil
	s.token = ""
	if err := s.kv.Del(ctx, TokenKey); err != nil {
		s.warn(ctx, "customer.clear_token_failed", err)
	}
	if logoutErr != nil {
		return s.fail(ctx, "customer.logout_failed", logoutErr)
	}
	return nil
}

// FetchCustomer loads the profile for the current session. Any failure,
// including the absence of a session, leaves the customer nil.
func (s *Store) FetchCustomer(ctx context.Context) {
	s.restore(ctx)
	if s.token == "" {
		s.customer = nil
		return
	}
	if err := s.loadProfile(ctx); err != nil {
		s.warn(ctx, "customer.fetch_failed", err)
	}
}

// loadProfile fetches the profile for the current token. On error the
// customer is left nil.
func (s *Store) loadProfile(ctx context.Context) error {
	customer, err := s.auth.RetrieveCustomer(ctx, s.token)
	if err != nil {
		s.customer = nil
		return err
	}
	s.customer = customer
	return nil
}

// IsPhone reports whether identifier looks like a phone number.
func IsPhone(identifier string) bool {
	return phonePattern.MatchString(strings.TrimSpace(identifier))
}

func (s *Store) restore(ctx context.Context) {
	if s.restored {
		return
	}
	s.restored = true
	s.token = s.read(ctx, TokenKey)
	s.pendingPhone = s.read(ctx, PendingPhoneKey)
}

func (s *Store) read(ctx context.Context, key string) string {
	value, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.warn(ctx, "customer.load_failed", err)
		}
		return ""
	}
	return value
}

func (s *Store) setToken(ctx context.Context, token string) error {
	s.token = token
	if err := s.kv.Set(ctx, TokenKey, token, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist customer token")
	}
	return nil
}

func (s *Store) begin() {
	s.loading = true
	s.lastError = ""
}

func (s *Store) end() {
	s.loading = false
}

func (s *Store) fail(ctx context.Context, event string, err error) error {
	s.lastError = medusa.ErrorMessage(err)
	s.warn(ctx, event, err)
	return err
}

func (s *Store) warn(ctx context.Context, event string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), event)
}
