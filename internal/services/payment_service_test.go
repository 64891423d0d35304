package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobboard/internal/config"
	"jobboard/internal/models/db_models"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	"jobboard/internal/testutil"
	"jobboard/pkg/utils"
)

// verifyServer answers the echo-back call with verdict and records what it
// was sent.
func verifyServer(t *testing.T, verdict string) (*httptest.Server, *[]byte) {
	t.Helper()
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, verdict)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

type paymentFixture struct {
	db     *gorm.DB
	user   *db_models.User
	tokens *utils.TokenManager
	audit  *bytes.Buffer
	svc    services.PaymentService
}

func newPaymentFixture(t *testing.T, verifyURL string) *paymentFixture {
	db := testutil.NewDB(t)
	f := &paymentFixture{
		db:     db,
		user:   testutil.CreateUser(t, db, "ada", db_models.RoleUser),
		tokens: newTokens(),
		audit:  &bytes.Buffer{},
	}
	cfg := config.PaymentConfig{
		CheckoutURL: "https://sandbox.example/cgi-bin/webscr",
		Business:    "seller@example.com",
		ItemName:    "Exclusive Membership",
		Amount:      "9.99",
		Currency:    "USD",
	}
	f.svc = services.NewPaymentService(
		services.NewIPNVerifier(verifyURL, &http.Client{Timeout: 5 * time.Second}),
		repositories.NewPaymentRepository(db),
		repositories.NewUserRepository(db),
		f.tokens,
		cfg,
		"http://jobs.test",
		zerolog.New(f.audit),
	)
	return f
}

func (f *paymentFixture) status(t *testing.T) db_models.Entitlement {
	t.Helper()
	var u db_models.User
	require.NoError(t, f.db.First(&u, "id = ?", f.user.ID).Error)
	return u.Status
}

func (f *paymentFixture) payments(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&db_models.Payment{}).Count(&n).Error)
	return n
}

func notification(username, txnID string) []byte {
	v := url.Values{}
	v.Set("payer_email", "buyer@example.com")
	v.Set("payment_date", "10:00:00 Jan 01, 2021 PST")
	v.Set("custom", username)
	v.Set("last_name", "Lovelace")
	v.Set("payment_gross", "9.99")
	v.Set("payment_fee", "0.59")
	v.Set("payment_status", "Completed")
	v.Set("mc_currency", "USD")
	v.Set("txn_id", txnID)
	return []byte(v.Encode())
}

func TestHandleNotification_Verified(t *testing.T) {
	srv, echoed := verifyServer(t, "VERIFIED")
	f := newPaymentFixture(t, srv.URL)
	body := notification("ada", "TXN-100")

	verdict := f.svc.HandleNotification(context.Background(), body)

	assert.Equal(t, "VERIFIED", verdict)
	assert.Equal(t, "cmd=_notify-validate&"+string(body), string(*echoed))
	assert.Equal(t, db_models.EntitlementExclusive, f.status(t))

	var p db_models.Payment
	require.NoError(t, f.db.First(&p, "provider_txn_id = ?", "TXN-100").Error)
	assert.EqualValues(t, 999, p.GrossMinor)
	assert.EqualValues(t, 59, p.FeeMinor)
	assert.EqualValues(t, 940, p.NetMinor)
	assert.Equal(t, "ada", p.Username)
	assert.Equal(t, "Completed", p.Status)

	var receipt map[string]string
	require.NoError(t, json.Unmarshal(p.Receipt, &receipt))
	assert.Equal(t, "TXN-100", receipt["txn_id"])
	assert.Contains(t, f.audit.String(), "SUCCESS")
}

func TestHandleNotification_InvalidChangesNothing(t *testing.T) {
	srv, _ := verifyServer(t, "INVALID")
	f := newPaymentFixture(t, srv.URL)

	verdict := f.svc.HandleNotification(context.Background(), notification("ada", "TXN-101"))

	assert.Equal(t, "INVALID", verdict)
	assert.Zero(t, f.payments(t))
	assert.Equal(t, db_models.EntitlementRegular, f.status(t))
	assert.Contains(t, f.audit.String(), "FAILURE")
}

func TestHandleNotification_OnlyExactVerifiedCounts(t *testing.T) {
	for _, reply := range []string{" VERIFIED \r\n", "VERIFIED\n", "verified", ""} {
		t.Run(reply, func(t *testing.T) {
			srv, _ := verifyServer(t, reply)
			f := newPaymentFixture(t, srv.URL)

			verdict := f.svc.HandleNotification(context.Background(), notification("ada", "TXN-106"))

			assert.NotEqual(t, services.VerdictVerified, verdict)
			assert.Zero(t, f.payments(t))
			assert.Equal(t, db_models.EntitlementRegular, f.status(t))
		})
	}
}

func TestHandleNotification_UnreachableVerifier(t *testing.T) {
	srv, _ := verifyServer(t, "VERIFIED")
	srv.Close()
	f := newPaymentFixture(t, srv.URL)

	f.svc.HandleNotification(context.Background(), notification("ada", "TXN-102"))

	assert.Zero(t, f.payments(t))
	assert.Equal(t, db_models.EntitlementRegular, f.status(t))
}

func TestHandleNotification_BadAmountsAreAuditedNotStored(t *testing.T) {
	srv, _ := verifyServer(t, "VERIFIED")
	f := newPaymentFixture(t, srv.URL)

	v := url.Values{}
	v.Set("custom", "ada")
	v.Set("txn_id", "TXN-103")
	v.Set("payment_gross", "nine")
	f.svc.HandleNotification(context.Background(), []byte(v.Encode()))

	assert.Zero(t, f.payments(t))
	assert.Equal(t, db_models.EntitlementRegular, f.status(t))
	assert.Contains(t, f.audit.String(), "ERROR WITH IPN DATA")
}

func TestHandleNotification_RetryIsIgnored(t *testing.T) {
	srv, _ := verifyServer(t, "VERIFIED")
	f := newPaymentFixture(t, srv.URL)
	body := notification("ada", "TXN-104")

	f.svc.HandleNotification(context.Background(), body)
	f.svc.HandleNotification(context.Background(), body)

	assert.EqualValues(t, 1, f.payments(t))
	assert.Contains(t, f.audit.String(), "DUPLICATE")
}

func TestHandleNotification_LegacyTxnKey(t *testing.T) {
	srv, _ := verifyServer(t, "VERIFIED")
	f := newPaymentFixture(t, srv.URL)

	v := url.Values{}
	v.Set("custom", "ada")
	v.Set("tnx.id", "TXN-105")
	v.Set("payment_gross", "9.99")
	v.Set("payment_fee", "0.59")
	f.svc.HandleNotification(context.Background(), []byte(v.Encode()))

	assert.EqualValues(t, 1, f.payments(t))
}

func TestCheckoutAndEntitlement(t *testing.T) {
	srv, _ := verifyServer(t, "VERIFIED")
	f := newPaymentFixture(t, srv.URL)
	ctx := context.Background()

	token, err := f.tokens.CreateRegistrationToken(f.user.ID, f.user.Username)
	require.NoError(t, err)

	checkout, err := f.svc.Checkout(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Test", checkout.FirstName)
	assert.Equal(t, "ada", checkout.Fields["custom"])
	assert.Equal(t, "9.99", checkout.Fields["amount"])
	assert.Equal(t, "http://jobs.test/payment-notify", checkout.Fields["notify_url"])
	assert.Equal(t, "http://jobs.test/success?token="+url.QueryEscape(token), checkout.Fields["return"])

	ent, err := f.svc.Entitlement(ctx, token)
	require.NoError(t, err)
	assert.False(t, ent.Exclusive)

	f.svc.HandleNotification(ctx, notification("ada", "TXN-106"))

	ent, err = f.svc.Entitlement(ctx, token)
	require.NoError(t, err)
	assert.True(t, ent.Exclusive)
	assert.Equal(t, "Exclusive", ent.Status)

	_, err = f.svc.Entitlement(ctx, "not-a-token")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
