package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"hrbus/internal/app/server"
	"hrbus/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func TestEmployeeAndAccessJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		Addr:          ":0",
		DatabaseURL:   dbURL,
		Environment:   "test",
		DemoToken:     "journey-demo-token",
		MigrationsDir: "../../../../migrations",
		MaxBodyBytes:  1048576,
		RunMigrations: true,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	cpf := time.Now().UnixNano() % 100000000000
	created := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/employees", map[string]any{
		"nome":            "Journey Tester",
		"cpf":             cpf,
		"cargo":           "Motorista",
		"salario":         4200.00,
		"first_note_text": "Cadastrado pelo teste de jornada",
	}, http.StatusCreated)

	var employee struct {
		Matricula int64  `json:"matricula"`
		Nome      string `json:"nome"`
		Notes     []struct {
			Text     string `json:"text"`
			Category string `json:"category"`
		} `json:"notes"`
	}
	if err := json.Unmarshal(created.Data, &employee); err != nil {
		t.Fatalf("create response decode failed: %v", err)
	}
	if employee.Matricula < 1000 {
		t.Fatalf("matricula = %d, want >= 1000", employee.Matricula)
	}
	if len(employee.Notes) != 1 {
		t.Fatalf("notes = %+v, want exactly the first note", employee.Notes)
	}
	if employee.Notes[0].Text != "Cadastrado pelo teste de jornada" {
		t.Fatalf("note text = %q", employee.Notes[0].Text)
	}
	if employee.Notes[0].Category != "Cadastro Inicial" {
		t.Fatalf("note category = %q", employee.Notes[0].Category)
	}

	csv := fmt.Sprintf("date,time,matricula,bus_number\n2024-03-01,08:00:00,%d,5\n2024-03-01,17:30:00,%d,5\n",
		employee.Matricula, employee.Matricula)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/imports/access", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("request build failed: %v", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+cfg.DemoToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import status = %d, want 201", resp.StatusCode)
	}

	report := doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/v1/access/by-employee?matricula=%d", ts.URL, employee.Matricula),
		nil, http.StatusOK)
	var history struct {
		TotalAccesses int `json:"total_accesses"`
	}
	if err := json.Unmarshal(report.Data, &history); err != nil {
		t.Fatalf("report decode failed: %v", err)
	}
	if history.TotalAccesses != 2 {
		t.Fatalf("total_accesses = %d, want 2", history.TotalAccesses)
	}

	doJSON(t, client, http.MethodDelete,
		fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, employee.Matricula),
		map[string]any{"nome": employee.Nome, "cpf": cpf}, http.StatusOK)

	doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/v1/access/by-employee?matricula=%d", ts.URL, employee.Matricula),
		nil, http.StatusNotFound)
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload any, wantStatus int) envelope {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("payload marshal failed: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("request build failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer journey-demo-token")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("response read failed: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d: %s", method, url, resp.StatusCode, wantStatus, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("envelope decode failed: %v", err)
	}
	return env
}
