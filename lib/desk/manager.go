// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package desk

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/deskbridge/lib/validator"
	"github.com/bureau-foundation/deskbridge/lib/zendesk"
)

// Envelope messages. Callers match on these strings, so they are part
// of the package's contract.
const (
	MessageCreated  = "Ticket created successfully"
	MessageUpdated  = "Ticket updated successfully"
	MessageFetched  = "Ticket fetched successfully"
	MessageDeleted  = "Ticket deleted successfully"
	MessageSearched = "Search completed successfully"
	MessageUsers    = "Users fetched successfully"
	MessageComment  = "Comment added successfully"

	ErrorCreateValidation  = "Validation failed for create_ticket"
	ErrorUpdateValidation  = "Validation failed for update_ticket"
	ErrorFetchValidation   = "Validation failed for get_ticket"
	ErrorDeleteValidation  = "Validation failed for delete_ticket"
	ErrorSearchValidation  = "Validation failed for search_tickets"
	ErrorCommentValidation = "Validation failed for add_comment"

	ErrorCreate   = "Failed to create ticket"
	ErrorUpdate   = "Failed to update ticket"
	ErrorFetch    = "Failed to fetch ticket"
	ErrorDelete   = "Failed to delete ticket"
	ErrorSearch   = "Failed to search tickets"
	ErrorNoMatch  = "No tickets matched the search"
	ErrorNoUsers  = "No users found"
	ErrorComment  = "Failed to add comment"
	ErrorUserList = "Failed to fetch users"

	ErrorPaginationLimit = "Listing exceeded the pagination limit"
)

// Hints appended to the details of a failure the caller can act on.
const (
	HintUnauthorized = "check the Zendesk email and API token, and the agent's access to this ticket"
	HintRateLimited  = "Zendesk rate limit reached; nothing was retried, try again later"
)

const (
	ticketsPath = "/api/v2/tickets.json"
	usersPath   = "/api/v2/users.json"
	searchPath  = "/api/v2/search.json"
)

// Config holds the dependencies of a Manager.
type Config struct {
	// Client performs the REST calls. Required.
	Client *zendesk.Client

	// MarkdownBodies renders ticket descriptions and comments from
	// Markdown to HTML and sends them as html_body.
	MarkdownBodies bool

	// Logger receives one record per operation. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Manager runs ticket operations. It holds only immutable
// configuration and is safe for concurrent use.
type Manager struct {
	client   *zendesk.Client
	markdown bool
	logger   *slog.Logger
}

// New creates a Manager. Panics if config.Client is nil.
func New(config Config) *Manager {
	if config.Client == nil {
		panic("desk: Config.Client is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		client:   config.Client,
		markdown: config.MarkdownBodies,
		logger:   logger,
	}
}

// operation tracks one Manager call for logging.
type operation struct {
	logger  *slog.Logger
	started time.Time
}

func (manager *Manager) begin(name string) operation {
	return operation{
		logger:  manager.logger.With("operation", name, "operation_id", uuid.NewString()),
		started: time.Now(),
	}
}

// finish logs the outcome and returns the envelope unchanged.
func (op operation) finish(envelope Envelope) Envelope {
	if envelope.Success {
		op.logger.Info("ticket operation succeeded",
			"message", envelope.Message,
			"duration", time.Since(op.started),
		)
	} else {
		op.logger.Warn("ticket operation failed",
			"error", envelope.Error,
			"details", envelope.Details,
			"duration", time.Since(op.started),
		)
	}
	return envelope
}

// callFailure builds the failure envelope for a client error. The
// details carry the error text.
func callFailure(message string, err error) Envelope {
	switch {
	case zendesk.IsUnauthorized(err):
		return fail(message, err.Error(), HintUnauthorized)
	case zendesk.IsRateLimited(err):
		return fail(message, err.Error(), HintRateLimited)
	}
	return fail(message, err.Error())
}

// listingFailure builds the failure envelope for a listing walk. A
// walk stopped by the page or item bound gets its own message, since
// retrying will not help.
func listingFailure(message string, err error) Envelope {
	if zendesk.IsPaginationLimit(err) {
		return fail(ErrorPaginationLimit, err.Error())
	}
	return callFailure(message, err)
}

// shapeFailure builds the failure envelope for a 2xx response that
// lacks the expected shape. The details carry the body as received.
func shapeFailure(message string, response zendesk.Response) Envelope {
	return fail(message, response.String())
}

// Create opens a ticket for requesterID. Priority may be empty, in
// which case it defaults to "normal".
//
// The request carries an Idempotency-Key derived from the requester
// and payload, so resubmitting an identical ticket returns the one
// already created.
func (manager *Manager) Create(ctx context.Context, requesterID, subject, description, priority string) Envelope {
	op := manager.begin("create_ticket")

	request := validator.CreateRequest{
		RequesterID: requesterID,
		Subject:     subject,
		Description: description,
		Priority:    priority,
	}
	if result := validator.ValidateCreate(request); !result.OK() {
		return op.finish(fail(ErrorCreateValidation, result.Violations...))
	}

	comment, err := manager.comment(description, nil)
	if err != nil {
		return op.finish(fail(ErrorCreate, err.Error()))
	}
	payload := zendesk.TicketEnvelope{Ticket: zendesk.TicketPayload{
		Subject:  subject,
		Comment:  comment,
		Priority: request.NormalizedPriority(),
	}}
	applyRequester(&payload.Ticket, requesterID)

	key, err := zendesk.IdempotencyKey(strings.TrimSpace(requesterID), payload)
	if err != nil {
		return op.finish(fail(ErrorCreate, err.Error()))
	}

	response, err := manager.client.Post(ctx, ticketsPath, payload, zendesk.WithIdempotencyKey(key))
	if err != nil {
		return op.finish(callFailure(ErrorCreate, err))
	}
	if response.Kind != zendesk.KindTicket {
		return op.finish(shapeFailure(ErrorCreate, response))
	}
	return op.finish(succeed(MessageCreated, createdTicket(response.Ticket)))
}

// Update changes a ticket's status, optionally adding a comment. An
// empty comment is omitted from the payload.
func (manager *Manager) Update(ctx context.Context, ticketID int64, status, comment string) Envelope {
	op := manager.begin("update_ticket")

	request := validator.UpdateRequest{TicketID: ticketID, Status: status, Comment: comment}
	if result := validator.ValidateUpdate(request); !result.OK() {
		return op.finish(fail(ErrorUpdateValidation, result.Violations...))
	}

	payload := zendesk.TicketEnvelope{Ticket: zendesk.TicketPayload{
		Status: request.NormalizedStatus(),
	}}
	if comment != "" {
		body, err := manager.comment(comment, nil)
		if err != nil {
			return op.finish(fail(ErrorUpdate, err.Error()))
		}
		payload.Ticket.Comment = body
	}

	response, err := manager.client.Put(ctx, ticketPath(ticketID), payload)
	if err != nil {
		return op.finish(callFailure(ErrorUpdate, err))
	}
	if response.Kind != zendesk.KindTicket {
		return op.finish(shapeFailure(ErrorUpdate, response))
	}
	return op.finish(succeed(MessageUpdated, updatedTicket(response.Ticket)))
}

// List returns every ticket in the account, walking all pages. Any
// failed page fails the whole listing.
func (manager *Manager) List(ctx context.Context) Envelope {
	op := manager.begin("list_tickets")

	tickets, err := manager.client.ListTickets(ctx)
	if zendesk.IsPaginationLimit(err) {
		return op.finish(fail(ErrorPaginationLimit, err.Error()))
	}
	if err != nil {
		return op.finish(fail(err.Error()))
	}
	return op.finish(succeed("", tickets))
}

// Get fetches one ticket.
func (manager *Manager) Get(ctx context.Context, ticketID int64) Envelope {
	op := manager.begin("get_ticket")

	if result := validator.ValidateTicketID(ticketID); !result.OK() {
		return op.finish(fail(ErrorFetchValidation, result.Violations...))
	}

	response, err := manager.client.Get(ctx, ticketPath(ticketID))
	if err != nil {
		return op.finish(callFailure(ErrorFetch, err))
	}
	if response.Kind != zendesk.KindTicket {
		return op.finish(shapeFailure(ErrorFetch, response))
	}
	return op.finish(succeed(MessageFetched, *response.Ticket))
}

// Delete removes a ticket. Only an empty response counts as success;
// any body at all means the service did something other than delete.
func (manager *Manager) Delete(ctx context.Context, ticketID int64) Envelope {
	op := manager.begin("delete_ticket")

	if result := validator.ValidateTicketID(ticketID); !result.OK() {
		return op.finish(fail(ErrorDeleteValidation, result.Violations...))
	}

	response, err := manager.client.Delete(ctx, ticketPath(ticketID))
	if err != nil {
		return op.finish(callFailure(ErrorDelete, err))
	}
	if response.Kind != zendesk.KindEmpty {
		return op.finish(shapeFailure(ErrorDelete, response))
	}
	return op.finish(succeed(MessageDeleted, nil))
}

// Search runs a ticket search. The query is scoped to tickets with
// "type:ticket"; only the first page of results is returned, as the
// service orders them by relevance.
func (manager *Manager) Search(ctx context.Context, query string) Envelope {
	op := manager.begin("search_tickets")

	if result := validator.ValidateQuery(query); !result.OK() {
		return op.finish(fail(ErrorSearchValidation, result.Violations...))
	}

	values := url.Values{"query": {"type:ticket " + strings.TrimSpace(query)}}
	response, err := manager.client.Get(ctx, searchPath+"?"+values.Encode())
	if err != nil {
		return op.finish(callFailure(ErrorSearch, err))
	}
	if response.Kind != zendesk.KindSearchResults {
		return op.finish(shapeFailure(ErrorSearch, response))
	}
	if len(response.Results) == 0 {
		return op.finish(fail(ErrorNoMatch))
	}
	return op.finish(succeed(MessageSearched, response.Results))
}

// ListUsers returns every user in the account, walking all pages.
func (manager *Manager) ListUsers(ctx context.Context) Envelope {
	op := manager.begin("list_users")

	users, err := manager.client.ListUsers(ctx)
	if err != nil {
		return op.finish(listingFailure(ErrorUserList, err))
	}
	if len(users) == 0 {
		return op.finish(fail(ErrorNoUsers))
	}
	return op.finish(succeed(MessageUsers, users))
}

// AddComment appends a comment to a ticket without touching any other
// field. Public comments are visible to the requester; private ones
// only to agents.
func (manager *Manager) AddComment(ctx context.Context, ticketID int64, comment string, public bool) Envelope {
	op := manager.begin("add_comment")

	request := validator.CommentRequest{TicketID: ticketID, Comment: comment, Public: public}
	if result := validator.ValidateComment(request); !result.OK() {
		return op.finish(fail(ErrorCommentValidation, result.Violations...))
	}

	body, err := manager.comment(comment, &public)
	if err != nil {
		return op.finish(fail(ErrorComment, err.Error()))
	}
	payload := zendesk.TicketEnvelope{Ticket: zendesk.TicketPayload{Comment: body}}

	response, err := manager.client.Put(ctx, ticketPath(ticketID), payload)
	if err != nil {
		return op.finish(callFailure(ErrorComment, err))
	}
	if response.Kind != zendesk.KindTicket {
		return op.finish(shapeFailure(ErrorComment, response))
	}
	return op.finish(succeed(MessageComment, *response.Ticket))
}

func ticketPath(ticketID int64) string {
	return "/api/v2/tickets/" + strconv.FormatInt(ticketID, 10) + ".json"
}

// applyRequester sets the requester of a new ticket. A numeric id
// names an existing user; an address is resolved (or created) by the
// service; anything else is sent as the requester's name.
func applyRequester(ticket *zendesk.TicketPayload, requesterID string) {
	requesterID = strings.TrimSpace(requesterID)
	if id, err := strconv.ParseInt(requesterID, 10, 64); err == nil && id > 0 {
		ticket.RequesterID = id
		return
	}
	if strings.Contains(requesterID, "@") {
		ticket.Requester = &zendesk.Requester{Email: requesterID}
		return
	}
	ticket.Requester = &zendesk.Requester{Name: requesterID}
}

// comment builds the comment object for text, rendering Markdown to
// html_body when enabled.
func (manager *Manager) comment(text string, public *bool) (*zendesk.Comment, error) {
	if !manager.markdown {
		return &zendesk.Comment{Body: text, Public: public}, nil
	}
	html, err := renderMarkdown(text)
	if err != nil {
		return nil, fmt.Errorf("rendering comment markdown: %w", err)
	}
	return &zendesk.Comment{HTMLBody: html, Public: public}, nil
}

// IsValidationFailure reports whether envelope was rejected before
// any network call.
func IsValidationFailure(envelope Envelope) bool {
	return !envelope.Success && strings.HasPrefix(envelope.Error, "Validation failed for ")
}
