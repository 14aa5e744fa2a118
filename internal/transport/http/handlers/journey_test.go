package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"staffdesk/internal/app/server"
	"staffdesk/internal/platform/config"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func startApp(t *testing.T) (*httptest.Server, config.Config) {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		Environment:        "test",
		MigrationsDir:      "../../../../migrations",
		SeedAdminUsername:  "admin",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		PayslipDir:         t.TempDir(),
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts, cfg
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, envelope) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &payload)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		env = envelope{}
	}
	return resp.StatusCode, env
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", username, status)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.Token == "" {
		t.Fatalf("login %s: no token in response", username)
	}
	return out.Token
}

func employeeRoleID(t *testing.T, client *http.Client, baseURL, adminToken string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodGet, baseURL+"/api/v1/admin/roles", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list roles: expected 200, got %d", status)
	}
	var roles []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &roles); err != nil {
		t.Fatalf("decode roles: %v", err)
	}
	for _, role := range roles {
		if role.Name == "employee" {
			return role.ID
		}
	}
	t.Fatal("employee role not seeded")
	return ""
}

func provisionEmployee(t *testing.T, client *http.Client, baseURL, adminToken, username, password string) string {
	t.Helper()
	roleID := employeeRoleID(t, client, baseURL, adminToken)
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/admin/users", adminToken, map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
		"roleId":   roleID,
		"employee": map[string]string{
			"employeeNumber": "EMP-" + username,
			"firstName":      "Jo",
			"lastName":       "Dane",
			"baseSalary":     "3000",
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("provision employee: expected 201, got %d (error %+v)", status, env.Error)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.ID == "" {
		t.Fatal("provision employee: no id in response")
	}
	return out.ID
}

func createBonusType(t *testing.T, client *http.Client, baseURL, token, name string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/catalog/bonus-types", token, map[string]string{"name": name})
	if status != http.StatusCreated {
		t.Fatalf("create bonus type: expected 201, got %d", status)
	}
	var out struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &out)
	return out.ID
}

type sheetView struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	TotalBonuses  string `json:"totalBonuses"`
	NetSalary     string `json:"netSalary"`
	TotalBenefits string `json:"totalBenefits"`
}

func TestPayrollSheetJourney(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	username := fmt.Sprintf("journey-%d", time.Now().UnixNano())
	employeeID := provisionEmployee(t, client, ts.URL, adminToken, username, "Secret123!")
	bonusTypeID := createBonusType(t, client, ts.URL, adminToken, "Journey bonus "+username)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets", adminToken, map[string]any{
		"employeeId":          employeeID,
		"month":               3,
		"year":                2024,
		"grossSalary":         "3000",
		"socialContributions": "300",
		"incomeTax":           "200",
	})
	if status != http.StatusCreated {
		t.Fatalf("create sheet: expected 201, got %d (error %+v)", status, env.Error)
	}
	var sheet sheetView
	if err := json.Unmarshal(env.Data, &sheet); err != nil || sheet.ID == "" {
		t.Fatal("create sheet: no sheet in response")
	}
	if sheet.Status != "draft" {
		t.Fatalf("new sheet status: expected draft, got %s", sheet.Status)
	}

	// Duplicate period is rejected.
	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets", adminToken, map[string]any{
		"employeeId":  employeeID,
		"month":       3,
		"year":        2024,
		"grossSalary": "3000",
	})
	if status != http.StatusConflict || env.Error == nil || env.Error.Code != "duplicate_period" {
		t.Fatalf("duplicate period: expected 409 duplicate_period, got %d %+v", status, env.Error)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets/"+sheet.ID+"/bonuses", adminToken, map[string]string{
		"bonusTypeId": bonusTypeID,
		"amount":      "150",
	})
	if status != http.StatusOK {
		t.Fatalf("attach bonus: expected 200, got %d (error %+v)", status, env.Error)
	}
	_ = json.Unmarshal(env.Data, &sheet)
	if sheet.NetSalary != "2650" {
		t.Fatalf("net after bonus: expected 2650, got %s", sheet.NetSalary)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets/"+sheet.ID+"/validate", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("validate sheet: expected 200, got %d (error %+v)", status, env.Error)
	}

	// Validated sheets are frozen.
	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets/"+sheet.ID+"/bonuses", adminToken, map[string]string{
		"bonusTypeId": bonusTypeID,
		"amount":      "10",
	})
	if status != http.StatusConflict || env.Error == nil || env.Error.Code != "sheet_not_editable" {
		t.Fatalf("attach on validated: expected 409 sheet_not_editable, got %d %+v", status, env.Error)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets/"+sheet.ID+"/issue", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("issue sheet: expected 200, got %d (error %+v)", status, env.Error)
	}
	_ = json.Unmarshal(env.Data, &sheet)
	if sheet.Status != "issued" {
		t.Fatalf("issued sheet status: expected issued, got %s", sheet.Status)
	}

	// Employee sees the issued sheet and downloads the payslip.
	employeeToken := login(t, client, ts.URL, username, "Secret123!")
	status, _ = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/payroll/my-sheets", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my-sheets: expected 200, got %d", status)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/payroll/sheets/"+sheet.ID+"/payslip", nil)
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("payslip download: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payslip download: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("payslip content type: expected application/pdf, got %s", ct)
	}

	// Employees never reach staff payroll routes.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/payroll/sheets", employeeToken, map[string]any{
		"employeeId": employeeID, "month": 4, "year": 2024, "grossSalary": "3000",
	})
	if status != http.StatusForbidden {
		t.Fatalf("employee create sheet: expected 403, got %d", status)
	}
}

func TestLeaveJourney(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	username := fmt.Sprintf("leave-%d", time.Now().UnixNano())
	provisionEmployee(t, client, ts.URL, adminToken, username, "Secret123!")
	employeeToken := login(t, client, ts.URL, username, "Secret123!")

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests", employeeToken, map[string]string{
		"kind":      "paid",
		"startDate": "2024-07-01",
		"endDate":   "2024-07-05",
		"reason":    "summer break",
	})
	if status != http.StatusCreated {
		t.Fatalf("create leave request: expected 201, got %d (error %+v)", status, env.Error)
	}
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(env.Data, &req)
	if req.Status != "requested" {
		t.Fatalf("new request status: expected requested, got %s", req.Status)
	}

	// Employees cannot approve.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+req.ID+"/approve", employeeToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("employee approve: expected 403, got %d", status)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+req.ID+"/approve", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d (error %+v)", status, env.Error)
	}

	// Second decision is rejected as already decided.
	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+req.ID+"/reject", adminToken, nil)
	if status != http.StatusConflict || env.Error == nil || env.Error.Code != "leave_already_decided" {
		t.Fatalf("second decision: expected 409 leave_already_decided, got %d %+v", status, env.Error)
	}

	// Backwards range is a validation error.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests", employeeToken, map[string]string{
		"kind":      "paid",
		"startDate": "2024-07-10",
		"endDate":   "2024-07-05",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("backwards range: expected 400, got %d", status)
	}
}

func TestAttendanceDuplicateDay(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	username := fmt.Sprintf("attend-%d", time.Now().UnixNano())
	employeeID := provisionEmployee(t, client, ts.URL, adminToken, username, "Secret123!")

	payload := map[string]string{
		"employeeId": employeeID,
		"workDay":    "2024-06-10",
		"arrival":    "2024-06-10T09:00:00Z",
		"departure":  "2024-06-10T17:00:00Z",
	}
	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/", adminToken, payload)
	if status != http.StatusCreated {
		t.Fatalf("create attendance: expected 201, got %d (error %+v)", status, env.Error)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/", adminToken, payload)
	if status != http.StatusConflict || env.Error == nil || env.Error.Code != "duplicate_attendance" {
		t.Fatalf("duplicate day: expected 409 duplicate_attendance, got %d %+v", status, env.Error)
	}

	payload["workDay"] = "2024-06-11"
	payload["arrival"] = "2024-06-11T09:00:00Z"
	payload["departure"] = "2024-06-11T08:00:00Z"
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/", adminToken, payload)
	if status != http.StatusBadRequest {
		t.Fatalf("departure before arrival: expected 400, got %d", status)
	}
}

func TestTrainingEnrollment(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	username := fmt.Sprintf("train-%d", time.Now().UnixNano())
	provisionEmployee(t, client, ts.URL, adminToken, username, "Secret123!")
	employeeToken := login(t, client, ts.URL, username, "Secret123!")

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/trainings/", adminToken, map[string]string{
		"title":         "Safety basics " + username,
		"startDate":     "2024-09-01",
		"endDate":       "2024-09-02",
		"durationHours": "16",
	})
	if status != http.StatusCreated {
		t.Fatalf("create training: expected 201, got %d (error %+v)", status, env.Error)
	}
	var tr struct {
		ID            string `json:"id"`
		DurationHours int    `json:"durationHours"`
	}
	_ = json.Unmarshal(env.Data, &tr)
	if tr.DurationHours != 16 {
		t.Fatalf("training duration: expected 16, got %d", tr.DurationHours)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/trainings/"+tr.ID+"/enroll", employeeToken, nil)
	if status != http.StatusCreated {
		t.Fatalf("enroll: expected 201, got %d (error %+v)", status, env.Error)
	}
	var enrollment struct {
		ID         string `json:"id"`
		EnrolledOn string `json:"enrolledOn"`
		Status     string `json:"status"`
		Result     string `json:"result"`
	}
	_ = json.Unmarshal(env.Data, &enrollment)
	if enrollment.ID == "" || enrollment.EnrolledOn == "" {
		t.Fatalf("enroll: missing id or enrolledOn in %s", env.Data)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/trainings/"+tr.ID+"/enroll", employeeToken, nil)
	if status != http.StatusConflict || env.Error == nil || env.Error.Code != "already_enrolled" {
		t.Fatalf("double enroll: expected 409 already_enrolled, got %d %+v", status, env.Error)
	}

	// HR records the outcome.
	status, env = doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/trainings/enrollments/"+enrollment.ID, adminToken, map[string]string{
		"status": "completed",
		"result": "passed",
	})
	if status != http.StatusOK {
		t.Fatalf("set enrollment status: expected 200, got %d (error %+v)", status, env.Error)
	}
	_ = json.Unmarshal(env.Data, &enrollment)
	if enrollment.Status != "completed" || enrollment.Result != "passed" {
		t.Fatalf("enrollment outcome: expected completed/passed, got %s/%s", enrollment.Status, enrollment.Result)
	}

	status, env = doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/trainings/enrollments/"+enrollment.ID, adminToken, map[string]string{
		"status": "archived",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("unknown enrollment status: expected 400, got %d (error %+v)", status, env.Error)
	}

	status, _ = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/my-trainings", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my-trainings: expected 200, got %d", status)
	}
}
