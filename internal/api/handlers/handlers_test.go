package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bountyboard/bountyboard-backend/internal/faucet"
	"github.com/bountyboard/bountyboard-backend/internal/lifecycle"
	"github.com/bountyboard/bountyboard-backend/pkg/auth"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/ipfs"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
	"github.com/bountyboard/bountyboard-backend/pkg/validator"
)

const (
	creator   = "0xFEDCbAFEdCBAFEdcbaFEDCbaFEdcbAfEdcBAfeDC"
	supporter = "0x1234567890AbcdEF1234567890aBcdef12345678"
	requestID = "6f1c1f4e-3b0a-4c8e-9f55-0a4b1f0b1c2d"
	validCID  = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	paymentTx = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGinValidations(); err != nil {
		panic(err)
	}
}

type testEnv struct {
	lifecycle *MockLifecycle
	auth      *MockAuthenticator
	content   *ipfs.MockContentStore
	faucet    *MockDispenser
	health    *MockHealthChecker
	router    *gin.Engine
}

// newTestEnv wires every route with the given caller pre-authenticated; an empty caller leaves the request anonymous
func newTestEnv(caller string, authDisabled bool) *testEnv {
	env := &testEnv{
		lifecycle: &MockLifecycle{},
		auth:      &MockAuthenticator{},
		content:   &ipfs.MockContentStore{},
		faucet:    &MockDispenser{},
		health:    &MockHealthChecker{},
	}
	h := NewHandler(Dependencies{
		Lifecycle:    env.lifecycle,
		Auth:         env.auth,
		Content:      env.content,
		Faucet:       env.faucet,
		Health:       env.health,
		AuthDisabled: authDisabled,
		Version:      "test",
	}, logging.NewNoOpLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if caller != "" {
			c.Set(auth.AddressClaim, caller)
		}
	})
	router.GET("/health", h.HealthCheck)
	router.POST("/api/auth/nonce", h.RequestNonce)
	router.POST("/api/auth/verify", h.VerifySignature)
	router.GET("/api/bounties", h.ListBounties)
	router.GET("/api/bounties/:id", h.GetBounty)
	router.POST("/api/bounties", h.CreateBounty)
	router.GET("/api/bounties/:id/eligibility/:address", h.CheckEligibility)
	router.GET("/api/requests/:id", h.GetRequest)
	router.POST("/api/requests", h.CreateRequest)
	router.POST("/api/fulfill", h.Fulfill)
	router.POST("/api/release-payment", h.ReleasePayment)
	router.POST("/api/ratings", h.SubmitRating)
	router.GET("/api/reputation/:address", h.GetReputation)
	router.POST("/api/pin", h.PinJSON)
	router.POST("/api/pin/file", h.PinFile)
	router.GET("/api/faucet", h.Faucet)
	router.POST("/api/events", h.HandleChainEvent)
	router.GET("/api/events", h.ChainEventsHealth)
	env.router = router
	return env
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestFulfill_StatusCodes(t *testing.T) {
	tests := []struct {
		name        string
		body        gin.H
		setup       func(m *MockLifecycle)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing request id",
			body:        gin.H{"status": "completed", "cid": validCID},
			wantStatus:  http.StatusBadRequest,
			wantMessage: pkgerrors.ErrMissingFields,
		},
		{
			name:        "missing status",
			body:        gin.H{"requestId": requestID},
			wantStatus:  http.StatusBadRequest,
			wantMessage: pkgerrors.ErrMissingFields,
		},
		{
			name:        "invalid status",
			body:        gin.H{"requestId": requestID, "status": "paid"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: pkgerrors.ErrInvalidFulfillment,
		},
		{
			name:        "malformed cid rejected at binding",
			body:        gin.H{"requestId": requestID, "status": "completed", "cid": "not-a-real-cid"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: pkgerrors.ErrInvalidCID,
		},
		{
			name: "missing cid on completion",
			body: gin.H{"requestId": requestID, "status": "completed"},
			setup: func(m *MockLifecycle) {
				m.On("FulfillRequest", mock.Anything, creator, requestID, "").
					Return(nil, lifecycle.NewError(lifecycle.ErrValidation, pkgerrors.ErrInvalidCID)).Once()
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: pkgerrors.ErrInvalidCID,
		},
		{
			name: "not the creator",
			body: gin.H{"requestId": requestID, "status": "completed", "cid": validCID},
			setup: func(m *MockLifecycle) {
				m.On("FulfillRequest", mock.Anything, creator, requestID, validCID).
					Return(nil, lifecycle.NewError(lifecycle.ErrForbidden, pkgerrors.ErrForbidden)).Once()
			},
			wantStatus:  http.StatusForbidden,
			wantMessage: pkgerrors.ErrForbidden,
		},
		{
			name: "unknown request",
			body: gin.H{"requestId": requestID, "status": "rejected"},
			setup: func(m *MockLifecycle) {
				m.On("RejectRequest", mock.Anything, creator, requestID).
					Return(nil, lifecycle.NewError(lifecycle.ErrNotFound, pkgerrors.ErrRequestNotFound)).Once()
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: pkgerrors.ErrRequestNotFound,
		},
		{
			name: "concurrent change",
			body: gin.H{"requestId": requestID, "status": "completed", "cid": validCID},
			setup: func(m *MockLifecycle) {
				m.On("FulfillRequest", mock.Anything, creator, requestID, validCID).
					Return(nil, lifecycle.NewError(lifecycle.ErrConflict, pkgerrors.ErrTransitionConflict)).Once()
			},
			wantStatus:  http.StatusConflict,
			wantMessage: pkgerrors.ErrTransitionConflict,
		},
		{
			name: "store failure",
			body: gin.H{"requestId": requestID, "status": "completed", "cid": validCID},
			setup: func(m *MockLifecycle) {
				m.On("FulfillRequest", mock.Anything, creator, requestID, validCID).
					Return(nil, errors.New("connection reset by peer")).Once()
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: pkgerrors.ErrFulfillFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(creator, false)
			if tt.setup != nil {
				tt.setup(env.lifecycle)
			}

			w := env.do(http.MethodPost, "/api/fulfill", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMessage, errorBody(t, w))
			env.lifecycle.AssertExpectations(t)
		})
	}
}

func TestFulfill_Success(t *testing.T) {
	env := newTestEnv(creator, false)
	cid := validCID
	env.lifecycle.On("FulfillRequest", mock.Anything, creator, requestID, validCID).
		Return(&types.Request{ID: requestID, Status: types.RequestStatusCompleted, FulfilledCID: &cid}, nil).Once()

	w := env.do(http.MethodPost, "/api/fulfill", gin.H{"requestId": requestID, "status": "completed", "cid": validCID})

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.FulfillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, types.RequestStatusCompleted, resp.Request.Status)
	assert.Equal(t, "Request completed successfully", resp.Message)
}

func TestCaller_Resolution(t *testing.T) {
	body := gin.H{"requestId": requestID, "status": "rejected", "creatorAddress": creator}

	t.Run("anonymous with auth enabled", func(t *testing.T) {
		env := newTestEnv("", false)
		w := env.do(http.MethodPost, "/api/fulfill", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env.lifecycle.AssertNotCalled(t, "RejectRequest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("body address disagrees with token", func(t *testing.T) {
		env := newTestEnv(supporter, false)
		w := env.do(http.MethodPost, "/api/fulfill", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("auth disabled trusts the body", func(t *testing.T) {
		env := newTestEnv("", true)
		env.lifecycle.On("RejectRequest", mock.Anything, creator, requestID).
			Return(&types.Request{ID: requestID, Status: types.RequestStatusRejected}, nil).Once()

		w := env.do(http.MethodPost, "/api/fulfill", body)
		assert.Equal(t, http.StatusOK, w.Code)
		env.lifecycle.AssertExpectations(t)
	})

	t.Run("auth disabled without body address", func(t *testing.T) {
		env := newTestEnv("", true)
		w := env.do(http.MethodPost, "/api/fulfill", gin.H{"requestId": requestID, "status": "rejected"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, pkgerrors.ErrMissingFields, errorBody(t, w))
	})
}

func TestReleasePayment(t *testing.T) {
	t.Run("missing tx hash", func(t *testing.T) {
		env := newTestEnv(supporter, false)
		w := env.do(http.MethodPost, "/api/release-payment", gin.H{"requestId": requestID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, pkgerrors.ErrMissingFields, errorBody(t, w))
	})

	t.Run("malformed tx hash", func(t *testing.T) {
		env := newTestEnv(supporter, false)
		w := env.do(http.MethodPost, "/api/release-payment", gin.H{"requestId": requestID, "txHash": "0xabc"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, pkgerrors.ErrInvalidTxHash, errorBody(t, w))
		env.lifecycle.AssertNotCalled(t, "ReleasePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not completed", func(t *testing.T) {
		env := newTestEnv(supporter, false)
		env.lifecycle.On("ReleasePayment", mock.Anything, supporter, requestID, paymentTx).
			Return(nil, lifecycle.NewError(lifecycle.ErrPrecondition, pkgerrors.ErrNotCompleted)).Once()

		w := env.do(http.MethodPost, "/api/release-payment", gin.H{"requestId": requestID, "txHash": paymentTx})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, pkgerrors.ErrNotCompleted, errorBody(t, w))
	})

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(supporter, false)
		hash := paymentTx
		env.lifecycle.On("ReleasePayment", mock.Anything, supporter, requestID, paymentTx).
			Return(&types.Request{ID: requestID, Status: types.RequestStatusPaid, TxHash: &hash}, nil).Once()

		w := env.do(http.MethodPost, "/api/release-payment", gin.H{"requestId": requestID, "txHash": paymentTx})
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.ReleasePaymentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, paymentTx, resp.TransactionHash)
		assert.Equal(t, types.RequestStatusPaid, resp.Request.Status)
	})
}

func TestCreateBounty(t *testing.T) {
	env := newTestEnv(creator, false)
	env.lifecycle.On("CreateBounty", mock.Anything, creator, mock.MatchedBy(func(req *types.CreateBountyRequest) bool {
		return req.Name == "Sketches"
	})).Return(&types.Bounty{ID: 3, Name: "Sketches", CreatorAddress: creator}, nil).Once()

	w := env.do(http.MethodPost, "/api/bounties", gin.H{
		"contract_address": "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		"name":             "Sketches",
		"base_price_eth":   "0.01",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	env.lifecycle.AssertExpectations(t)

	w = env.do(http.MethodPost, "/api/bounties", gin.H{"contract_address": "0x12", "name": "Sketches"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBounty(t *testing.T) {
	env := newTestEnv("", false)
	env.lifecycle.On("GetBounty", mock.Anything, int64(9)).
		Return(nil, lifecycle.NewError(lifecycle.ErrNotFound, pkgerrors.ErrBountyNotFound)).Once()

	w := env.do(http.MethodGet, "/api/bounties/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, pkgerrors.ErrBountyNotFound, errorBody(t, w))

	w = env.do(http.MethodGet, "/api/bounties/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkgerrors.ErrInvalidBountyID, errorBody(t, w))
}

func TestListBounties_Empty(t *testing.T) {
	env := newTestEnv("", false)
	env.lifecycle.On("ListBounties", mock.Anything).Return([]types.Bounty{}, nil).Once()

	w := env.do(http.MethodGet, "/api/bounties", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCheckEligibility(t *testing.T) {
	env := newTestEnv("", false)
	env.lifecycle.On("CheckEligibility", mock.Anything, int64(4), supporter).Return(&types.EligibilityResponse{
		BountyID: 4,
		Balance:  types.NewBigIntFromInt64(5),
		Required: types.NewBigIntFromInt64(10),
		Eligible: false,
	}, nil).Once()

	w := env.do(http.MethodGet, "/api/bounties/4/eligibility/"+supporter, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"eligible":false`)
	assert.Contains(t, w.Body.String(), `"required":"10"`)
}

func TestSubmitRating_UpstreamFailure(t *testing.T) {
	env := newTestEnv(supporter, false)
	env.lifecycle.On("SubmitRating", mock.Anything, supporter, mock.Anything).
		Return(nil, lifecycle.NewError(lifecycle.ErrUpstream, pkgerrors.ErrChainCallFailed)).Once()

	w := env.do(http.MethodPost, "/api/ratings", gin.H{"creatorAddress": creator, "rating": 4, "comment": "Great"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = env.do(http.MethodPost, "/api/ratings", gin.H{"creatorAddress": creator, "rating": 9, "comment": "Great"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv("", false)
	env.auth.On("Challenge", mock.Anything, supporter).
		Return(&types.NonceResponse{Address: supporter, Nonce: "n-1", Message: "sign me"}, nil).Once()
	env.auth.On("Login", mock.Anything, supporter, "0xbad").Return(nil, auth.ErrSignatureMismatch).Once()
	env.auth.On("Login", mock.Anything, supporter, "0x").Return(nil, auth.ErrMalformedSignature).Once()
	env.auth.On("Login", mock.Anything, supporter, "0xgood").
		Return(&types.VerifyResponse{Token: "jwt", Address: supporter, ExpiresAt: 1}, nil).Once()

	w := env.do(http.MethodPost, "/api/auth/nonce", gin.H{"address": supporter})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "n-1")

	w = env.do(http.MethodPost, "/api/auth/nonce", gin.H{"address": "nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/verify", gin.H{"address": supporter, "signature": "0xbad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/auth/verify", gin.H{"address": supporter, "signature": "0x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/verify", gin.H{"address": supporter, "signature": "0xgood"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"jwt"`)
	env.auth.AssertExpectations(t)
}

func TestPinJSON(t *testing.T) {
	env := newTestEnv("", false)
	env.content.On("PinJSON", mock.Anything, "bounty-board-json", mock.Anything).Return(validCID, nil).Once()
	env.content.On("GatewayURL", validCID).Return("https://gateway.pinata.cloud/ipfs/" + validCID).Once()

	w := env.do(http.MethodPost, "/api/pin", gin.H{"data": gin.H{"name": "x"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.PinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, validCID, resp.CID)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/"+validCID, resp.GatewayURL)

	w = env.do(http.MethodPost, "/api/pin", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkgerrors.ErrDataRequired, errorBody(t, w))
	env.content.AssertExpectations(t)
}

func TestPinFile(t *testing.T) {
	env := newTestEnv("", false)
	env.content.On("PinFile", mock.Anything, "art.txt", mock.Anything, []byte("hello")).Return(validCID, nil).Once()
	env.content.On("GatewayURL", validCID).Return("https://ipfs.io/ipfs/" + validCID).Once()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "art.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/pin/file", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.PinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://ipfs.io/ipfs/"+validCID, resp.GatewayURL)
	env.content.AssertExpectations(t)

	w = env.do(http.MethodPost, "/api/pin/file", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFaucet(t *testing.T) {
	env := newTestEnv("", false)
	env.faucet.On("Dispense", mock.Anything, "0xtoken", supporter, "10").Return("0xfeed", nil).Once()
	env.faucet.On("Dispense", mock.Anything, "", supporter, "10").Return("", faucet.ErrInvalidParams).Once()
	env.faucet.On("Dispense", mock.Anything, "0xtoken", creator, "10").Return("", errors.New("insufficient funds")).Once()

	w := env.do(http.MethodGet, "/api/faucet?contract=0xtoken&to="+supporter+"&amount=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"txHash":"0xfeed"}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/faucet?to="+supporter+"&amount=10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkgerrors.ErrMissingParameters, errorBody(t, w))

	w = env.do(http.MethodGet, "/api/faucet?contract=0xtoken&to="+creator+"&amount=10", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, errorBody(t, w), "insufficient funds")
}

func TestChainEvents(t *testing.T) {
	env := newTestEnv("", false)

	for _, event := range []string{"Transfer", "Approval", "Mint"} {
		w := env.do(http.MethodPost, "/api/events", gin.H{"event": event, "data": gin.H{"from": creator}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
	}

	w := env.do(http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv("", false)
	env.health.On("HealthCheck", mock.Anything).Return(nil).Once()
	w := env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	env.health.On("HealthCheck", mock.Anything).Return(errors.New("db down")).Once()
	w = env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}
