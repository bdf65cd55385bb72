package minutes

import (
	"net/url"
	"strconv"
)

// Status is the review state of a meeting minute (ata).
type Status string

const (
	StatusPending       Status = "pending"
	StatusUnderReview   Status = "under_review"
	StatusAuthenticated Status = "authenticated"
	StatusRejected      Status = "rejected"
)

// StatusLabels are the human-readable (pt-BR) names shown to users.
var StatusLabels = map[Status]string{
	StatusPending:       "Pendente",
	StatusUnderReview:   "Em Análise",
	StatusAuthenticated: "Autenticado",
	StatusRejected:      "Rejeitado",
}

func (s Status) Valid() bool {
	_, ok := StatusLabels[s]
	return ok
}

// Participant is one person extracted from the document.
type Participant struct {
	Name string `json:"name"`
	RG   string `json:"rg"`
	CPF  string `json:"cpf"`
	Role string `json:"role"`
}

// LLMData is the machine-extracted structure of a submitted document.
type LLMData struct {
	Summary       string        `json:"summary"`
	Subjects      []string      `json:"subjects"`
	Agenda        string        `json:"agenda"`
	Deliberations []string      `json:"deliberations"`
	Participants  []Participant `json:"participants"`
	Signatures    []string      `json:"signatures"`
	Keywords      []string      `json:"keywords"`
}

// Author identifies who submitted a meeting minute.
type Author struct {
	Login string `json:"login"`
	CNPJ  string `json:"cnpj,omitempty"`
}

// MeetingMinute is the domain document tracked by the backend. The gateway only
// moves these around; review and blockchain anchoring happen upstream.
type MeetingMinute struct {
	ID              string   `json:"id"`
	CNPJ            string   `json:"cnpj"`
	SubmissionDate  string   `json:"submissionDate"`
	Status          Status   `json:"status"`
	Summary         string   `json:"summary"`
	PDFURL          string   `json:"pdfUrl,omitempty"`
	PhotoURL        string   `json:"photoUrl,omitempty"`
	SignatureURL    string   `json:"signatureUrl,omitempty"`
	LLMData         *LLMData `json:"llmData,omitempty"`
	SignaturesValid *bool    `json:"signaturesValid,omitempty"`
	Inconsistencies []string `json:"inconsistencies,omitempty"`
	Comments        []string `json:"comments,omitempty"`
	BlockchainHash  string   `json:"blockchainHash,omitempty"`
	BlockchainTxID  string   `json:"blockchainTxId,omitempty"`
	CreatedBy       *Author  `json:"createdBy,omitempty"`
	CommentsCount   int      `json:"commentsCount,omitempty"`
}

// Update is a partial review update applied by notary staff.
type Update struct {
	Status          *Status  `json:"status,omitempty"`
	Summary         *string  `json:"summary,omitempty"`
	SignaturesValid *bool    `json:"signaturesValid,omitempty"`
	Inconsistencies []string `json:"inconsistencies,omitempty"`
	LLMData         *LLMData `json:"llmData,omitempty"`
}

// Filters narrows a meeting-minute listing.
type Filters struct {
	CNPJ     string
	DateFrom string
	DateTo   string
	Status   Status
	Keywords string
	Page     int
	Limit    int
}

// Query renders the filters as URL query parameters, skipping empty values.
func (f Filters) Query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("cnpj", f.CNPJ)
	set("dateFrom", f.DateFrom)
	set("dateTo", f.DateTo)
	set("status", string(f.Status))
	set("keywords", f.Keywords)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Page is one page of a meeting-minute listing.
type Page struct {
	MeetingMinutes []MeetingMinute `json:"meetingMinutes"`
	Total          int             `json:"total"`
	Page           int             `json:"page"`
	Limit          int             `json:"limit"`
	TotalPages     int             `json:"totalPages"`
}

// ClientSummary is the reduced listing entry a company sees for its own documents.
type ClientSummary struct {
	ID             string `json:"id"`
	SubmissionDate string `json:"submissionDate"`
	Status         Status `json:"status"`
	Summary        string `json:"summary"`
	PDFURL         string `json:"pdfUrl,omitempty"`
}

// ClientPage is one page of a company's own documents.
type ClientPage struct {
	Moms       []ClientSummary `json:"moms"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// CommentsResult is the state of a document's comment thread after an append.
type CommentsResult struct {
	Comments      []string `json:"comments"`
	CommentsCount int      `json:"commentsCount"`
}
