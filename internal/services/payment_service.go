package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"jobboard/internal/config"
	dbm "jobboard/internal/models/db_models"
	"jobboard/internal/models/response_models"
	"jobboard/internal/repositories"
	"jobboard/pkg/logger"
	"jobboard/pkg/utils"
)

const (
	VerdictVerified = "VERIFIED"
	VerdictInvalid  = "INVALID"
)

// IPNVerifier echoes a notification back to the provider and returns its
// verdict text.
type IPNVerifier interface {
	Verify(ctx context.Context, rawBody []byte) (string, error)
}

type httpIPNVerifier struct {
	url    string
	client *http.Client
}

func NewIPNVerifier(verifyURL string, client *http.Client) IPNVerifier {
	return &httpIPNVerifier{url: verifyURL, client: client}
}

func (v *httpIPNVerifier) Verify(ctx context.Context, rawBody []byte) (string, error) {
	body := append([]byte("cmd=_notify-validate&"), rawBody...)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "jobboard-ipn/1.0")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if err != nil {
		return "", err
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("verify endpoint returned %d", resp.StatusCode)
	}
	return string(text), nil
}

type PaymentService interface {
	Checkout(ctx context.Context, registrationToken string) (*response_models.CheckoutResponse, error)
	Entitlement(ctx context.Context, registrationToken string) (*response_models.EntitlementResponse, error)
	// HandleNotification never fails the caller; the provider only needs an
	// acknowledgement. It returns the verdict it acted on.
	HandleNotification(ctx context.Context, rawBody []byte) string
}

type paymentService struct {
	verifier IPNVerifier
	payments repositories.PaymentRepository
	users    repositories.UserRepository
	tokens   *utils.TokenManager
	cfg      config.PaymentConfig
	baseURL  string
	audit    zerolog.Logger
}

func NewPaymentService(
	verifier IPNVerifier,
	payments repositories.PaymentRepository,
	users repositories.UserRepository,
	tokens *utils.TokenManager,
	cfg config.PaymentConfig,
	baseURL string,
	audit zerolog.Logger,
) PaymentService {
	return &paymentService{
		verifier: verifier,
		payments: payments,
		users:    users,
		tokens:   tokens,
		cfg:      cfg,
		baseURL:  strings.TrimRight(baseURL, "/"),
		audit:    audit,
	}
}

func (p *paymentService) registeredUser(ctx context.Context, token string) (*dbm.User, error) {
	claims, ok := p.tokens.VerifyRegistrationToken(token)
	if !ok {
		return nil, utils.ErrInvalidToken
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}
	user, err := p.users.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

// Checkout builds the hosted-checkout form. custom carries the username,
// which is how the notification finds the account again.
func (p *paymentService) Checkout(ctx context.Context, registrationToken string) (*response_models.CheckoutResponse, error) {
	if p.cfg.Business == "" {
		return nil, utils.ErrCheckoutDisabled
	}
	user, err := p.registeredUser(ctx, registrationToken)
	if err != nil {
		return nil, err
	}

	return &response_models.CheckoutResponse{
		Action:    p.cfg.CheckoutURL,
		FirstName: user.FirstName,
		Fields: map[string]string{
			"cmd":           "_xclick",
			"business":      p.cfg.Business,
			"item_name":     p.cfg.ItemName,
			"amount":        p.cfg.Amount,
			"currency_code": p.cfg.Currency,
			"custom":        user.Username,
			"notify_url":    p.baseURL + "/payment-notify",
			"return":        p.baseURL + "/success?token=" + url.QueryEscape(registrationToken),
			"cancel_return": p.baseURL + "/",
		},
	}, nil
}

// Entitlement only reports; the upgrade itself happens on a verified
// notification.
func (p *paymentService) Entitlement(ctx context.Context, registrationToken string) (*response_models.EntitlementResponse, error) {
	user, err := p.registeredUser(ctx, registrationToken)
	if err != nil {
		return nil, err
	}
	return &response_models.EntitlementResponse{
		Username:  user.Username,
		Status:    string(user.Status),
		Exclusive: user.Status == dbm.EntitlementExclusive,
	}, nil
}

func (p *paymentService) HandleNotification(ctx context.Context, rawBody []byte) string {
	payload := string(rawBody)

	verdict, err := p.verifier.Verify(ctx, rawBody)
	if err != nil {
		p.audit.Error().Err(err).Str("payload", payload).Msg("FAILURE")
		logger.Warn().Err(err).Msg("ipn verification request failed")
		return VerdictInvalid
	}
	if verdict != VerdictVerified {
		p.audit.Warn().Str("verdict", verdict).Str("payload", payload).Msg("FAILURE")
		return verdict
	}

	payment, err := extractPayment(rawBody)
	if err != nil {
		p.audit.Error().Err(err).Str("payload", payload).Msg("ERROR WITH IPN DATA")
		return verdict
	}

	outcome, err := p.payments.RecordVerified(ctx, payment)
	if err != nil {
		p.audit.Error().Err(err).Str("payload", payload).Msg("ERROR STORING PAYMENT")
		logger.Error().Err(err).Str("txn_id", payment.ProviderTxnID).Msg("record payment failed")
		return verdict
	}

	event := p.audit.Info().
		Str("txn_id", payment.ProviderTxnID).
		Str("username", payment.Username).
		Bool("recorded", outcome.Recorded).
		Bool("user_found", outcome.UserFound).
		Str("payload", payload)
	if !outcome.Recorded {
		event.Msg("DUPLICATE")
		return verdict
	}
	event.Msg("SUCCESS")
	if !outcome.UserFound {
		logger.Warn().Str("username", payment.Username).Msg("verified payment for unknown username")
	}
	return verdict
}

var errMissingField = errors.New("missing field")

func firstOf(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(values.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// extractPayment maps a verified notification onto a Payment row.
func extractPayment(rawBody []byte) (*dbm.Payment, error) {
	values, err := url.ParseQuery(string(rawBody))
	if err != nil {
		return nil, err
	}

	username := firstOf(values, "custom")
	if username == "" {
		return nil, fmt.Errorf("custom: %w", errMissingField)
	}
	txnID := firstOf(values, "txn_id", "tnx.id")
	if txnID == "" {
		return nil, fmt.Errorf("txn_id: %w", errMissingField)
	}
	gross, err := parseMinor(firstOf(values, "payment_gross", "mc_gross"))
	if err != nil {
		return nil, fmt.Errorf("payment_gross: %w", err)
	}
	fee, err := parseMinor(firstOf(values, "payment_fee", "mc_fee"))
	if err != nil {
		return nil, fmt.Errorf("payment_fee: %w", err)
	}

	receipt := make(map[string]string, len(values))
	for k := range values {
		receipt[k] = values.Get(k)
	}
	raw, err := json.Marshal(receipt)
	if err != nil {
		return nil, err
	}

	return &dbm.Payment{
		PayerEmail:    firstOf(values, "payer_email"),
		PaymentDate:   firstOf(values, "payment_date"),
		Username:      username,
		LastName:      firstOf(values, "last_name"),
		GrossMinor:    gross,
		FeeMinor:      fee,
		NetMinor:      gross - fee,
		Currency:      firstOf(values, "mc_currency"),
		Status:        firstOf(values, "payment_status"),
		ProviderTxnID: txnID,
		Receipt:       datatypes.JSON(raw),
	}, nil
}

// parseMinor turns "9.99" into 999.
func parseMinor(s string) (int64, error) {
	if s == "" {
		return 0, errMissingField
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int64(math.Round(f * 100)), nil
}
