package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nearest-blood-locator/internal/delivery/dto"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const genericFailure = "Something went wrong. Please try again."

// TokenSource supplies the bearer token for owner-scoped calls.
type TokenSource interface {
	Token() string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// API is a thin client for the blood locator REST endpoints. It never retries.
type API struct {
	http   *resty.Client
	tokens TokenSource
}

func NewAPI(baseURL string, timeout time.Duration, tokens TokenSource) *API {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &API{
		http:   client,
		tokens: tokens,
	}
}

func (a *API) request(ctx context.Context, authed bool) (*resty.Request, error) {
	req := a.http.R().SetContext(ctx)
	if authed {
		token := a.tokens.Token()
		if token == "" {
			return nil, ErrNotAuthenticated
		}
		req.SetAuthToken(token)
	}
	return req, nil
}

func (a *API) do(ctx context.Context, method, path string, authed bool, query url.Values, body, out interface{}) error {
	req, err := a.request(ctx, authed)
	if err != nil {
		return err
	}
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &APIError{Message: err.Error(), Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.IsError() {
		return newAPIError(resp.StatusCode(), env, decodeErr)
	}
	if decodeErr != nil {
		return &APIError{StatusCode: resp.StatusCode(), Message: genericFailure, Err: decodeErr}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode(), Message: genericFailure, Err: err}
		}
	}
	return nil
}

func newAPIError(status int, env envelope, decodeErr error) *APIError {
	apiErr := &APIError{StatusCode: status, Message: genericFailure}
	if decodeErr != nil {
		apiErr.Err = decodeErr
		return apiErr
	}
	if env.Message != "" {
		apiErr.Message = env.Message
	}
	var code string
	if json.Unmarshal(env.Error, &code) == nil {
		apiErr.Code = code
		apiErr.Err = codeErrors[code]
	}
	return apiErr
}

func (a *API) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := a.do(ctx, http.MethodPost, "/register", false, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *API) Login(ctx context.Context, identifier, password string) (*dto.LoginResponse, error) {
	var result dto.LoginResponse
	body := dto.LoginRequest{Username: identifier, Password: password}
	if err := a.do(ctx, http.MethodPost, "/login", false, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *API) Logout(ctx context.Context) error {
	return a.do(ctx, http.MethodPost, "/logout", true, nil, nil, nil)
}

func (a *API) Me(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := a.do(ctx, http.MethodGet, "/me", true, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DonorQuery narrows GET /donors. Zero values are omitted.
type DonorQuery struct {
	BloodGroup    string
	Location      string
	AvailableOnly bool
}

func (q DonorQuery) values() url.Values {
	v := url.Values{}
	if q.BloodGroup != "" {
		v.Set("bloodGroup", q.BloodGroup)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.AvailableOnly {
		v.Set("available", strconv.FormatBool(true))
	}
	return v
}

func (a *API) SearchDonors(ctx context.Context, q DonorQuery) ([]dto.DonorResponse, error) {
	var list dto.DonorListResponse
	if err := a.do(ctx, http.MethodGet, "/donors", false, q.values(), nil, &list); err != nil {
		return nil, err
	}
	return list.Donors, nil
}

func (a *API) MyDonorProfile(ctx context.Context) (*dto.MyDonorResponse, error) {
	var mine dto.MyDonorResponse
	if err := a.do(ctx, http.MethodGet, "/donors/me", true, nil, nil, &mine); err != nil {
		return nil, err
	}
	return &mine, nil
}

func (a *API) UpsertDonorProfile(ctx context.Context, req *dto.UpsertDonorRequest) (*dto.DonorResponse, error) {
	var donor dto.DonorResponse
	if err := a.do(ctx, http.MethodPost, "/donors", true, nil, req, &donor); err != nil {
		return nil, err
	}
	return &donor, nil
}

func (a *API) DeleteDonorProfile(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/donors/me", true, nil, nil, nil)
}

func (a *API) SearchBanks(ctx context.Context, bloodGroup, city string) ([]dto.BloodBankResponse, error) {
	v := url.Values{}
	if bloodGroup != "" {
		v.Set("bloodGroup", bloodGroup)
	}
	if city != "" {
		v.Set("city", city)
	}
	var list dto.BloodBankListResponse
	if err := a.do(ctx, http.MethodGet, "/bloodbanks", false, v, nil, &list); err != nil {
		return nil, err
	}
	return list.BloodBanks, nil
}

func (a *API) MyBanks(ctx context.Context) ([]dto.BloodBankResponse, error) {
	var list dto.BloodBankListResponse
	if err := a.do(ctx, http.MethodGet, "/bloodbanks/my", true, nil, nil, &list); err != nil {
		return nil, err
	}
	return list.BloodBanks, nil
}

func (a *API) UpsertBank(ctx context.Context, req *dto.UpsertBloodBankRequest) (*dto.BloodBankResponse, error) {
	var bank dto.BloodBankResponse
	if err := a.do(ctx, http.MethodPost, "/bloodbanks", true, nil, req, &bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (a *API) DeleteBank(ctx context.Context, id uuid.UUID) error {
	return a.do(ctx, http.MethodDelete, "/bloodbanks/"+id.String(), true, nil, nil, nil)
}

// MyStock is the owner view of the caller's bank.
func (a *API) MyStock(ctx context.Context, bloodGroup string) ([]dto.StockResponse, error) {
	return a.listStock(ctx, true, nil, bloodGroup)
}

// PublicStock is the anonymous view across all banks.
func (a *API) PublicStock(ctx context.Context, bankID *uuid.UUID, bloodGroup string) ([]dto.StockResponse, error) {
	return a.listStock(ctx, false, bankID, bloodGroup)
}

func (a *API) listStock(ctx context.Context, authed bool, bankID *uuid.UUID, bloodGroup string) ([]dto.StockResponse, error) {
	v := url.Values{}
	if bankID != nil {
		v.Set("bankId", bankID.String())
	}
	if bloodGroup != "" {
		v.Set("bloodGroup", bloodGroup)
	}
	var list dto.StockListResponse
	if err := a.do(ctx, http.MethodGet, "/blood-stock", authed, v, nil, &list); err != nil {
		return nil, err
	}
	return list.Stock, nil
}

func (a *API) AddStock(ctx context.Context, req *dto.StockMutationRequest) (*dto.StockResponse, error) {
	var stock dto.StockResponse
	if err := a.do(ctx, http.MethodPost, "/blood-stock", true, nil, req, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (a *API) UpdateStock(ctx context.Context, req *dto.StockMutationRequest) (*dto.StockResponse, error) {
	var stock dto.StockResponse
	if err := a.do(ctx, http.MethodPut, "/blood-stock", true, nil, req, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

// ExportStock downloads the owner's stock workbook.
func (a *API) ExportStock(ctx context.Context) ([]byte, error) {
	req, err := a.request(ctx, true)
	if err != nil {
		return nil, err
	}
	resp, err := req.Get("/blood-stock/export")
	if err != nil {
		return nil, &APIError{Message: err.Error(), Err: err}
	}
	if resp.IsError() {
		var env envelope
		decodeErr := json.Unmarshal(resp.Body(), &env)
		return nil, newAPIError(resp.StatusCode(), env, decodeErr)
	}
	return resp.Body(), nil
}

func (a *API) ListRequests(ctx context.Context, bloodGroup, city string) ([]dto.BloodRequestResponse, error) {
	v := url.Values{}
	if bloodGroup != "" {
		v.Set("bloodGroup", bloodGroup)
	}
	if city != "" {
		v.Set("city", city)
	}
	var list dto.BloodRequestListResponse
	if err := a.do(ctx, http.MethodGet, "/recipients", false, v, nil, &list); err != nil {
		return nil, err
	}
	return list.Requests, nil
}

func (a *API) MyRequests(ctx context.Context) ([]dto.BloodRequestResponse, error) {
	var list dto.BloodRequestListResponse
	if err := a.do(ctx, http.MethodGet, "/recipients/my-requests", true, nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Requests, nil
}

func (a *API) GetRequest(ctx context.Context, id uuid.UUID) (*dto.BloodRequestResponse, error) {
	var req dto.BloodRequestResponse
	if err := a.do(ctx, http.MethodGet, "/recipients/"+id.String(), false, nil, nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (a *API) CreateRequest(ctx context.Context, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	var created dto.BloodRequestResponse
	if err := a.do(ctx, http.MethodPost, "/recipients", true, nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *API) CancelRequest(ctx context.Context, id uuid.UUID) error {
	return a.do(ctx, http.MethodDelete, "/recipients/"+id.String(), true, nil, nil, nil)
}

func (a *API) MyAuditLogs(ctx context.Context) (*dto.AuditLogListResponse, error) {
	var logs dto.AuditLogListResponse
	if err := a.do(ctx, http.MethodGet, "/audit-logs/my", true, nil, nil, &logs); err != nil {
		return nil, err
	}
	return &logs, nil
}
