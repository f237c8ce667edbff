package parking

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/application/parking/usecases"
	"github.com/parkline/parkline/internal/interfaces/http/handlers/testutil"
	"github.com/parkline/parkline/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterEntryUC struct {
	result *dto.TicketView
	err    error
	got    *usecases.RegisterEntryCommand
}

func (m *mockRegisterEntryUC) Execute(_ context.Context, cmd usecases.RegisterEntryCommand) (*dto.TicketView, error) {
	m.got = &cmd
	return m.result, m.err
}

type mockProcessExitUC struct {
	result *dto.TicketView
	err    error
	got    *usecases.ProcessExitCommand
}

func (m *mockProcessExitUC) Execute(_ context.Context, cmd usecases.ProcessExitCommand) (*dto.TicketView, error) {
	m.got = &cmd
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *dto.TicketView
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*dto.TicketView, error) {
	return m.result, m.err
}

type mockGrantFreeHoursUC struct {
	result *usecases.GrantFreeHoursResult
	err    error
	got    *usecases.GrantFreeHoursCommand
}

func (m *mockGrantFreeHoursUC) Execute(_ context.Context, cmd usecases.GrantFreeHoursCommand) (*usecases.GrantFreeHoursResult, error) {
	m.got = &cmd
	return m.result, m.err
}

type testDeps struct {
	registerEntryUC  *mockRegisterEntryUC
	processExitUC    *mockProcessExitUC
	getTicketUC      *mockGetTicketUC
	grantFreeHoursUC *mockGrantFreeHoursUC
}

func newTestParkingHandler(deps testDeps) *ParkingHandler {
	if deps.registerEntryUC == nil {
		deps.registerEntryUC = &mockRegisterEntryUC{}
	}
	if deps.processExitUC == nil {
		deps.processExitUC = &mockProcessExitUC{}
	}
	if deps.getTicketUC == nil {
		deps.getTicketUC = &mockGetTicketUC{}
	}
	if deps.grantFreeHoursUC == nil {
		deps.grantFreeHoursUC = &mockGrantFreeHoursUC{}
	}
	return NewParkingHandler(
		deps.registerEntryUC,
		deps.processExitUC,
		deps.getTicketUC,
		deps.grantFreeHoursUC,
		testutil.NewMockLogger(),
	)
}

func openTicketView() *dto.TicketView {
	return &dto.TicketView{
		ID:           7,
		Code:         "TK-20240304-ABCDEFGH",
		BranchID:     1,
		LicensePlate: "ABC123",
		VehicleType:  "car",
		Status:       "open",
		EntryTime:    time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	}
}

// =====================================================================
// RegisterEntry
// =====================================================================

func TestParkingHandler_RegisterEntry_Success(t *testing.T) {
	mockUC := &mockRegisterEntryUC{result: openTicketView()}
	handler := newTestParkingHandler(testDeps{registerEntryUC: mockUC})

	reqBody := RegisterEntryRequest{BranchID: 1, LicensePlate: "abc 123", VehicleType: "car"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)

	handler.RegisterEntry(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var view dto.TicketView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, uint(7), view.ID)
	assert.Equal(t, "open", view.Status)

	require.NotNil(t, mockUC.got)
	assert.Equal(t, uint(1), mockUC.got.BranchID)
	assert.Equal(t, "abc 123", mockUC.got.LicensePlate)
}

func TestParkingHandler_RegisterEntry_BindError(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing branch", map[string]any{"license_plate": "ABC123"}},
		{"missing plate", map[string]any{"branch_id": 1}},
		{"bad plate", map[string]any{"branch_id": 1, "license_plate": "A"}},
		{"malformed json", `{"branch_id": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockRegisterEntryUC{}
			handler := newTestParkingHandler(testDeps{registerEntryUC: mockUC})
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets", tt.body)

			handler.RegisterEntry(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, mockUC.got)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
		})
	}
}

func TestParkingHandler_RegisterEntry_UseCaseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"branch not found", errors.NewNotFoundError("branch not found"), http.StatusNotFound},
		{"already parked", errors.NewBusinessRuleError("vehicle already has an open ticket"), http.StatusUnprocessableEntity},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestParkingHandler(testDeps{registerEntryUC: &mockRegisterEntryUC{err: tt.err}})
			reqBody := RegisterEntryRequest{BranchID: 1, LicensePlate: "ABC123"}
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)

			handler.RegisterEntry(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// =====================================================================
// ProcessExit
// =====================================================================

func TestParkingHandler_ProcessExit_Success(t *testing.T) {
	exitTime := time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC)
	view := openTicketView()
	view.Status = "completed"
	view.ExitTime = &exitTime
	view.Charge = &dto.ChargeView{TotalHours: "3.00", TotalAmount: "45.00", Currency: "USD"}

	mockUC := &mockProcessExitUC{result: view}
	handler := newTestParkingHandler(testDeps{processExitUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/exit", nil)
	testutil.SetURLParam(c, "id", "7")

	handler.ProcessExit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, uint(7), mockUC.got.TicketID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got dto.TicketView
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	require.NotNil(t, got.Charge)
	assert.Equal(t, "45.00", got.Charge.TotalAmount)
}

func TestParkingHandler_ProcessExit_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-1"} {
		t.Run(id, func(t *testing.T) {
			mockUC := &mockProcessExitUC{}
			handler := newTestParkingHandler(testDeps{processExitUC: mockUC})
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets/"+id+"/exit", nil)
			testutil.SetURLParam(c, "id", id)

			handler.ProcessExit(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, mockUC.got)
		})
	}
}

func TestParkingHandler_ProcessExit_UseCaseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"already completed", errors.NewBusinessRuleError("exit already registered"), http.StatusUnprocessableEntity, "business_rule_violation"},
		{"subscription race lost", errors.NewConflictError("subscription was modified concurrently"), http.StatusConflict, "conflict"},
		{"not found", errors.NewNotFoundError("ticket not found"), http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestParkingHandler(testDeps{processExitUC: &mockProcessExitUC{err: tt.err}})
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/exit", nil)
			testutil.SetURLParam(c, "id", "7")

			handler.ProcessExit(c)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

// =====================================================================
// GetTicket
// =====================================================================

func TestParkingHandler_GetTicket(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		handler := newTestParkingHandler(testDeps{getTicketUC: &mockGetTicketUC{result: openTicketView()}})
		c, w := testutil.NewTestContext(http.MethodGet, "/tickets/7", nil)
		testutil.SetURLParam(c, "id", "7")

		handler.GetTicket(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)
	})

	t.Run("not found", func(t *testing.T) {
		handler := newTestParkingHandler(testDeps{getTicketUC: &mockGetTicketUC{err: errors.NewNotFoundError("ticket not found")}})
		c, w := testutil.NewTestContext(http.MethodGet, "/tickets/99", nil)
		testutil.SetURLParam(c, "id", "99")

		handler.GetTicket(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =====================================================================
// GrantFreeHours
// =====================================================================

func TestParkingHandler_GrantFreeHours_Success(t *testing.T) {
	mockUC := &mockGrantFreeHoursUC{result: &usecases.GrantFreeHoursResult{
		GrantID:        3,
		TicketID:       7,
		GrantedHours:   "1.50",
		TotalFreeHours: "2.00",
	}}
	handler := newTestParkingHandler(testDeps{grantFreeHoursUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/free-hours",
		`{"business_id": 42, "hours": 1.5}`)
	testutil.SetURLParam(c, "id", "7")

	handler.GrantFreeHours(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, uint(7), mockUC.got.TicketID)
	assert.Equal(t, uint(42), mockUC.got.BusinessID)
	assert.True(t, mockUC.got.Hours.Equal(decimal.RequireFromString("1.5")))

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got usecases.GrantFreeHoursResult
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "2.00", got.TotalFreeHours)
}

func TestParkingHandler_GrantFreeHours_StringHours(t *testing.T) {
	mockUC := &mockGrantFreeHoursUC{result: &usecases.GrantFreeHoursResult{}}
	handler := newTestParkingHandler(testDeps{grantFreeHoursUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/free-hours",
		`{"business_id": 42, "hours": "0.25"}`)
	testutil.SetURLParam(c, "id", "7")

	handler.GrantFreeHours(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, "0.25", mockUC.got.Hours.String())
}

func TestParkingHandler_GrantFreeHours_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body any
	}{
		{"invalid id", "x", `{"business_id": 1, "hours": 1}`},
		{"missing business", "7", `{"hours": 1}`},
		{"non numeric hours", "7", `{"business_id": 1, "hours": "lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockGrantFreeHoursUC{}
			handler := newTestParkingHandler(testDeps{grantFreeHoursUC: mockUC})
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets/"+tt.id+"/free-hours", tt.body)
			testutil.SetURLParam(c, "id", tt.id)

			handler.GrantFreeHours(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, mockUC.got)
		})
	}
}

func TestParkingHandler_GrantFreeHours_ClosedTicket(t *testing.T) {
	handler := newTestParkingHandler(testDeps{grantFreeHoursUC: &mockGrantFreeHoursUC{
		err: errors.NewBusinessRuleError("ticket is not open"),
	}})
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/7/free-hours", `{"business_id": 1, "hours": 1}`)
	testutil.SetURLParam(c, "id", "7")

	handler.GrantFreeHours(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
