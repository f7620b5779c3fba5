// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package desk

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/deskbridge/lib/validator"
	"github.com/bureau-foundation/deskbridge/lib/zendesk"
)

// recordedRequest is one request received by a fake Zendesk server.
type recordedRequest struct {
	Method         string
	Path           string
	Query          string
	IdempotencyKey string
	Body           map[string]any
}

// fakeZendesk is an httptest TLS server that answers every request
// with handler and records what it received.
type fakeZendesk struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeZendesk(t *testing.T, handler http.HandlerFunc) *fakeZendesk {
	t.Helper()
	fake := &fakeZendesk{}
	fake.server = httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorded := recordedRequest{
			Method:         request.Method,
			Path:           request.URL.Path,
			Query:          request.URL.RawQuery,
			IdempotencyKey: request.Header.Get("Idempotency-Key"),
		}
		if request.Body != nil {
			data, _ := io.ReadAll(request.Body)
			if len(data) > 0 {
				if err := json.Unmarshal(data, &recorded.Body); err != nil {
					t.Errorf("request body is not a JSON object: %v", err)
				}
			}
		}
		fake.mu.Lock()
		fake.requests = append(fake.requests, recorded)
		fake.mu.Unlock()
		handler(writer, request)
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func (fake *fakeZendesk) received() []recordedRequest {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]recordedRequest(nil), fake.requests...)
}

// respond returns a handler that writes status and body.
func respond(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		io.WriteString(writer, body)
	}
}

func newTestManager(t *testing.T, fake *fakeZendesk, markdown bool) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := zendesk.NewClient(zendesk.Config{
		BaseURL:    fake.server.URL,
		Email:      "agent@example.com",
		APIToken:   "test-token",
		HTTPClient: fake.server.Client(),
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return New(Config{Client: client, MarkdownBodies: markdown, Logger: logger})
}

func stringPointer(value string) *string {
	return &value
}

// nested walks a decoded JSON object along keys.
func nested(t *testing.T, object map[string]any, keys ...string) any {
	t.Helper()
	var current any = object
	for _, key := range keys {
		asMap, ok := current.(map[string]any)
		if !ok {
			t.Fatalf("value at %q is %T, not an object", key, current)
		}
		current = asMap[key]
	}
	return current
}

func TestCreate_PrinterBroken(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusCreated,
		`{"ticket":{"id":42,"subject":"Printer broken","status":"new","priority":"high"}}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.Create(context.Background(),
		"user-123", "Printer broken", "The office printer on floor 3 is jammed and unusable", "HIGH")

	want := Envelope{
		Success: true,
		Message: "Ticket created successfully",
		Data: CreatedTicket{
			ID:       42,
			Subject:  "Printer broken",
			Status:   "new",
			Priority: stringPointer("high"),
		},
	}
	if !reflect.DeepEqual(envelope, want) {
		t.Fatalf("envelope = %+v, want %+v", envelope, want)
	}

	encoded, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	wantJSON := `{"success":true,"message":"Ticket created successfully","data":{"id":42,"subject":"Printer broken","status":"new","priority":"high"}}`
	if string(encoded) != wantJSON {
		t.Errorf("JSON = %s\nwant   %s", encoded, wantJSON)
	}

	requests := fake.received()
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}
	request := requests[0]
	if request.Method != http.MethodPost || request.Path != "/api/v2/tickets.json" {
		t.Errorf("request = %s %s", request.Method, request.Path)
	}
	if got := nested(t, request.Body, "ticket", "priority"); got != "high" {
		t.Errorf("payload priority = %v, want high", got)
	}
	if got := nested(t, request.Body, "ticket", "subject"); got != "Printer broken" {
		t.Errorf("payload subject = %v", got)
	}
	if got := nested(t, request.Body, "ticket", "comment", "body"); got != "The office printer on floor 3 is jammed and unusable" {
		t.Errorf("payload comment body = %v", got)
	}
	if got := nested(t, request.Body, "ticket", "requester", "name"); got != "user-123" {
		t.Errorf("payload requester name = %v", got)
	}
	if request.IdempotencyKey == "" {
		t.Error("create request carried no Idempotency-Key")
	}
}

func TestCreate_DefaultPriorityAndRequesterForms(t *testing.T) {
	tests := []struct {
		name        string
		requesterID string
		keys        []string
		want        any
	}{
		{name: "numeric user id", requesterID: "1234567", keys: []string{"ticket", "requester_id"}, want: float64(1234567)},
		{name: "email address", requesterID: "pat@example.com", keys: []string{"ticket", "requester", "email"}, want: "pat@example.com"},
		{name: "name", requesterID: "employee-77", keys: []string{"ticket", "requester", "name"}, want: "employee-77"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := newFakeZendesk(t, respond(http.StatusCreated, `{"ticket":{"id":1,"subject":"Broken chair","status":"new","priority":"normal"}}`))
			manager := newTestManager(t, fake, false)

			envelope := manager.Create(context.Background(), test.requesterID, "Broken chair", "The chair in room 4 has a cracked leg", "")
			if !envelope.Success {
				t.Fatalf("Create failed: %+v", envelope)
			}
			body := fake.received()[0].Body
			if got := nested(t, body, test.keys...); got != test.want {
				t.Errorf("payload %v = %v, want %v", test.keys, got, test.want)
			}
			if got := nested(t, body, "ticket", "priority"); got != validator.DefaultPriority {
				t.Errorf("payload priority = %v, want %q", got, validator.DefaultPriority)
			}
		})
	}
}

func TestCreate_IdempotencyKeyStable(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusCreated, `{"ticket":{"id":5,"subject":"Printer broken","status":"new"}}`))
	manager := newTestManager(t, fake, false)

	for range 2 {
		manager.Create(context.Background(), "user-123", "Printer broken", "The office printer is jammed again", "low")
	}
	manager.Create(context.Background(), "user-456", "Printer broken", "The office printer is jammed again", "low")

	requests := fake.received()
	if requests[0].IdempotencyKey != requests[1].IdempotencyKey {
		t.Error("identical submissions produced different idempotency keys")
	}
	if requests[0].IdempotencyKey == requests[2].IdempotencyKey {
		t.Error("different requesters produced the same idempotency key")
	}
}

func TestCreate_ValidationFailureMakesNoCall(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusCreated, `{"ticket":{"id":1}}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.Create(context.Background(), "abc", "hey", "short", "critical")

	want := Envelope{
		Error: "Validation failed for create_ticket",
		Details: []string{
			validator.MessageRequesterID,
			validator.MessageSubjectShort,
			validator.MessageDescription,
			validator.MessagePriority,
		},
	}
	if !reflect.DeepEqual(envelope, want) {
		t.Errorf("envelope = %+v, want %+v", envelope, want)
	}
	if !IsValidationFailure(envelope) {
		t.Error("IsValidationFailure should be true")
	}
	if count := len(fake.received()); count != 0 {
		t.Errorf("invalid request made %d network calls", count)
	}
}

func TestCreate_MissingTicketInResponse(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK, `{"ticket":{}}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.Create(context.Background(), "user-123", "Printer broken", "The office printer is jammed again", "high")
	if envelope.Success || envelope.Error != ErrorCreate {
		t.Fatalf("envelope = %+v, want %q failure", envelope, ErrorCreate)
	}
	if !reflect.DeepEqual(envelope.Details, []string{`{"ticket":{}}`}) {
		t.Errorf("details = %q", envelope.Details)
	}
}

func TestUpdate_ResponseLackingTicket(t *testing.T) {
	body := `{"audit":{"id":9001,"events":[]}}`
	fake := newFakeZendesk(t, respond(http.StatusOK, body))
	manager := newTestManager(t, fake, false)

	envelope := manager.Update(context.Background(), 42, "SOLVED", "Replaced toner cartridge")

	want := Envelope{Error: "Failed to update ticket", Details: []string{body}}
	if !reflect.DeepEqual(envelope, want) {
		t.Errorf("envelope = %+v, want %+v", envelope, want)
	}

	requests := fake.received()
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}
	if requests[0].Method != http.MethodPut || requests[0].Path != "/api/v2/tickets/42.json" {
		t.Errorf("request = %s %s", requests[0].Method, requests[0].Path)
	}
	if got := nested(t, requests[0].Body, "ticket", "status"); got != "solved" {
		t.Errorf("payload status = %v, want solved", got)
	}
	if got := nested(t, requests[0].Body, "ticket", "comment", "body"); got != "Replaced toner cartridge" {
		t.Errorf("payload comment = %v", got)
	}
}

func TestUpdate_Success(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK,
		`{"ticket":{"id":42,"subject":"Printer broken","status":"solved","updated_at":"2026-03-01T10:00:00Z"}}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.Update(context.Background(), 42, "solved", "")
	if !envelope.Success || envelope.Message != MessageUpdated {
		t.Fatalf("envelope = %+v", envelope)
	}
	data, ok := envelope.Data.(UpdatedTicket)
	if !ok {
		t.Fatalf("Data is %T, want UpdatedTicket", envelope.Data)
	}
	if data.ID != 42 || data.Status != "solved" || data.UpdatedAt == nil || data.UpdatedAt.Year() != 2026 {
		t.Errorf("data = %+v", data)
	}

	ticket, _ := fake.received()[0].Body["ticket"].(map[string]any)
	if _, present := ticket["comment"]; present {
		t.Error("empty comment should be omitted from the payload")
	}
}

func TestUpdate_ValidationFailure(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK, `{}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.Update(context.Background(), 0, "done", "")
	want := Envelope{
		Error:   "Validation failed for update_ticket",
		Details: []string{validator.MessageTicketID, validator.MessageStatus},
	}
	if !reflect.DeepEqual(envelope, want) {
		t.Errorf("envelope = %+v, want %+v", envelope, want)
	}
	if count := len(fake.received()); count != 0 {
		t.Errorf("invalid request made %d network calls", count)
	}
}

func TestUpdate_TransportFailure(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK, `{}`))
	manager := newTestManager(t, fake, false)
	fake.server.Close()

	envelope := manager.Update(context.Background(), 42, "open", "")
	if envelope.Success || envelope.Error != ErrorUpdate {
		t.Fatalf("envelope = %+v", envelope)
	}
	if len(envelope.Details) != 1 || !strings.Contains(envelope.Details[0], "transport") {
		t.Errorf("details = %q, want the transport error text", envelope.Details)
	}
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{"ticket":{"id":7,"subject":"VPN down","status":"open","priority":"urgent"}}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Get(context.Background(), 7)
		if !envelope.Success || envelope.Message != MessageFetched {
			t.Fatalf("envelope = %+v", envelope)
		}
		ticket, ok := envelope.Data.(zendesk.Ticket)
		if !ok || ticket.ID != 7 || ticket.Subject != "VPN down" {
			t.Errorf("data = %#v", envelope.Data)
		}
	})

	t.Run("not found", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusNotFound, `{"error":"RecordNotFound","description":"Not found"}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Get(context.Background(), 7)
		if envelope.Success || envelope.Error != ErrorFetch {
			t.Fatalf("envelope = %+v", envelope)
		}
		if len(envelope.Details) != 1 || !strings.Contains(envelope.Details[0], "HTTP 404") {
			t.Errorf("details = %q", envelope.Details)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Get(context.Background(), -1)
		if envelope.Error != ErrorFetchValidation || len(fake.received()) != 0 {
			t.Errorf("envelope = %+v, requests = %d", envelope, len(fake.received()))
		}
	})
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		success bool
	}{
		{name: "no content", status: http.StatusNoContent, body: "", success: true},
		{name: "empty object", status: http.StatusOK, body: "{}", success: true},
		{name: "non-empty body", status: http.StatusOK, body: `{"ticket":{"id":3}}`, success: false},
		{name: "error status", status: http.StatusForbidden, body: `{"error":"Forbidden"}`, success: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := newFakeZendesk(t, respond(test.status, test.body))
			manager := newTestManager(t, fake, false)

			envelope := manager.Delete(context.Background(), 3)
			if envelope.Success != test.success {
				t.Fatalf("envelope = %+v, want success %v", envelope, test.success)
			}
			if test.success && envelope.Message != MessageDeleted {
				t.Errorf("message = %q", envelope.Message)
			}
			if !test.success && envelope.Error != ErrorDelete {
				t.Errorf("error = %q", envelope.Error)
			}
			if fake.received()[0].Method != http.MethodDelete {
				t.Errorf("method = %s", fake.received()[0].Method)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK,
			`{"results":[{"id":1,"subject":"Printer jam","status":"open","result_type":"ticket"}],"next_page":null,"count":1}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Search(context.Background(), " printer ")
		if !envelope.Success || envelope.Message != MessageSearched {
			t.Fatalf("envelope = %+v", envelope)
		}
		results, ok := envelope.Data.([]zendesk.SearchResult)
		if !ok || len(results) != 1 || results[0].Subject != "Printer jam" {
			t.Errorf("data = %#v", envelope.Data)
		}
		request := fake.received()[0]
		if request.Path != "/api/v2/search.json" || request.Query != "query=type%3Aticket+printer" {
			t.Errorf("request = %s?%s", request.Path, request.Query)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{"results":[],"count":0}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Search(context.Background(), "nothing")
		if envelope.Success || envelope.Error != ErrorNoMatch || envelope.Details != nil {
			t.Errorf("envelope = %+v", envelope)
		}
	})

	t.Run("blank query", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Search(context.Background(), "   ")
		if envelope.Error != ErrorSearchValidation || len(fake.received()) != 0 {
			t.Errorf("envelope = %+v", envelope)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{"tickets":[]}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.Search(context.Background(), "printer")
		if envelope.Error != ErrorSearch || !reflect.DeepEqual(envelope.Details, []string{`{"tickets":[]}`}) {
			t.Errorf("envelope = %+v", envelope)
		}
	})
}

func TestList(t *testing.T) {
	var server *fakeZendesk
	server = newFakeZendesk(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("page") == "2" {
			io.WriteString(writer, `{"tickets":[{"id":3,"subject":"c","status":"new"}],"next_page":null}`)
			return
		}
		io.WriteString(writer, `{"tickets":[{"id":1,"subject":"a","status":"open"},{"id":2,"subject":"b","status":"open"}],"next_page":"`+
			server.server.URL+`/api/v2/tickets.json?page=2"}`)
	})
	manager := newTestManager(t, server, false)

	envelope := manager.List(context.Background())
	if !envelope.Success || envelope.Message != "" || envelope.Error != "" {
		t.Fatalf("envelope = %+v", envelope)
	}
	tickets, ok := envelope.Data.([]zendesk.Ticket)
	if !ok || len(tickets) != 3 {
		t.Fatalf("data = %#v", envelope.Data)
	}
	for i, ticket := range tickets {
		if ticket.ID != int64(i+1) {
			t.Errorf("tickets[%d].ID = %d, want %d", i, ticket.ID, i+1)
		}
	}
}

func TestList_FailedPageDiscardsResults(t *testing.T) {
	var server *fakeZendesk
	server = newFakeZendesk(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("page") == "2" {
			writer.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(writer, `{"tickets":[{"id":1}],"next_page":"`+server.server.URL+`/api/v2/tickets.json?page=2"}`)
	})
	manager := newTestManager(t, server, false)

	envelope := manager.List(context.Background())
	if envelope.Success || envelope.Data != nil {
		t.Fatalf("envelope = %+v", envelope)
	}
	if !strings.Contains(envelope.Error, "HTTP 502") {
		t.Errorf("error = %q, want the HTTP 502 failure", envelope.Error)
	}
}

func TestListUsers(t *testing.T) {
	t.Run("users", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{"users":[{"id":9,"name":"Pat","email":"pat@example.com","role":"agent","active":true}],"next_page":null}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.ListUsers(context.Background())
		users, ok := envelope.Data.([]zendesk.User)
		if !envelope.Success || envelope.Message != MessageUsers || !ok || len(users) != 1 || users[0].Email != "pat@example.com" {
			t.Errorf("envelope = %+v", envelope)
		}
	})

	t.Run("none", func(t *testing.T) {
		fake := newFakeZendesk(t, respond(http.StatusOK, `{"users":[],"next_page":null}`))
		manager := newTestManager(t, fake, false)

		envelope := manager.ListUsers(context.Background())
		if envelope.Success || envelope.Error != ErrorNoUsers {
			t.Errorf("envelope = %+v", envelope)
		}
	})
}

func TestAddComment(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK, `{"ticket":{"id":42,"subject":"Printer broken","status":"open"}}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.AddComment(context.Background(), 42, "Technician on the way", false)
	if !envelope.Success || envelope.Message != MessageComment {
		t.Fatalf("envelope = %+v", envelope)
	}

	body := fake.received()[0].Body
	wantBody := map[string]any{
		"ticket": map[string]any{
			"comment": map[string]any{"body": "Technician on the way", "public": false},
		},
	}
	if !reflect.DeepEqual(body, wantBody) {
		t.Errorf("payload = %v, want %v", body, wantBody)
	}
}

func TestAddComment_ValidationFailure(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK, `{}`))
	manager := newTestManager(t, fake, false)

	envelope := manager.AddComment(context.Background(), 42, " ", true)
	want := Envelope{Error: ErrorCommentValidation, Details: []string{validator.MessageComment}}
	if !reflect.DeepEqual(envelope, want) {
		t.Errorf("envelope = %+v, want %+v", envelope, want)
	}
}

func TestMarkdownBodies(t *testing.T) {
	fake := newFakeZendesk(t, respond(http.StatusOK, `{"ticket":{"id":42,"subject":"Printer broken","status":"open"}}`))
	manager := newTestManager(t, fake, true)

	envelope := manager.AddComment(context.Background(), 42, "Toner is **empty**.\n<script>alert(1)</script>", true)
	if !envelope.Success {
		t.Fatalf("envelope = %+v", envelope)
	}

	comment, _ := nested(t, fake.received()[0].Body, "ticket", "comment").(map[string]any)
	html, _ := comment["html_body"].(string)
	if !strings.Contains(html, "<strong>empty</strong>") {
		t.Errorf("html_body = %q, want rendered emphasis", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("html_body passed raw HTML through: %q", html)
	}
	if _, present := comment["body"]; present {
		t.Error("plain body should be omitted when html_body is sent")
	}
}

func TestNew_RequiresClient(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New without a client should panic")
		}
	}()
	New(Config{})
}

// newLimitedManager builds a Manager whose client may fetch only one
// page per listing walk.
func newLimitedManager(t *testing.T, fake *fakeZendesk) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := zendesk.NewClient(zendesk.Config{
		BaseURL:    fake.server.URL,
		Email:      "agent@example.com",
		APIToken:   "test-token",
		HTTPClient: fake.server.Client(),
		Logger:     logger,
		MaxPages:   1,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return New(Config{Client: client, Logger: logger})
}

func TestListings_PaginationLimit(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		call     func(*Manager) Envelope
	}{
		{
			name:     "tickets",
			resource: "tickets",
			call:     func(manager *Manager) Envelope { return manager.List(context.Background()) },
		},
		{
			name:     "users",
			resource: "users",
			call:     func(manager *Manager) Envelope { return manager.ListUsers(context.Background()) },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var server *fakeZendesk
			server = newFakeZendesk(t, func(writer http.ResponseWriter, request *http.Request) {
				io.WriteString(writer, `{"`+test.resource+`":[{"id":1}],"next_page":"`+
					server.server.URL+`/api/v2/`+test.resource+`.json?page=2"}`)
			})
			manager := newLimitedManager(t, server)

			envelope := test.call(manager)
			if envelope.Success || envelope.Data != nil {
				t.Fatalf("envelope = %+v", envelope)
			}
			if envelope.Error != ErrorPaginationLimit {
				t.Errorf("error = %q, want %q", envelope.Error, ErrorPaginationLimit)
			}
			if len(envelope.Details) != 1 {
				t.Errorf("details = %q, want the client error", envelope.Details)
			}
		})
	}
}

func TestCallFailure_Hints(t *testing.T) {
	tests := []struct {
		name   string
		status int
		hint   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, hint: HintUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, hint: HintUnauthorized},
		{name: "rate limited", status: http.StatusTooManyRequests, hint: HintRateLimited},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := newFakeZendesk(t, respond(test.status, `{"error":"denied"}`))
			manager := newTestManager(t, fake, false)

			envelope := manager.Get(context.Background(), 7)
			if envelope.Success || envelope.Error != ErrorFetch {
				t.Fatalf("envelope = %+v", envelope)
			}
			if len(envelope.Details) != 2 || envelope.Details[1] != test.hint {
				t.Errorf("details = %q, want the HTTP error then %q", envelope.Details, test.hint)
			}
		})
	}
}
