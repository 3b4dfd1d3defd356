package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request carries the employment-contract fields exactly as the front end
// submits them; the field names are the wire contract.
type Request struct {
	RazaoSocial   string `json:"contractRazaoSocial"`
	CNPJ          string `json:"contractCNPJ"`
	Representante string `json:"contractRepresentante"`
	RepCPF        string `json:"contractRepCPF"`
	Rua           string `json:"contractRua"`
	Numero        string `json:"contractNumero"`
	Bairro        string `json:"contractBairro"`
	Cidade        string `json:"contractCidade"`
	UF            string `json:"contractUF"`
	CEP           string `json:"contractCEP"`

	NomeCompleto           string `json:"contractNomeCompleto"`
	Nacionalidade          string `json:"contractNacionalidade"`
	EstadoCivil            string `json:"contractEstadoCivil"`
	CPF                    string `json:"contractCPF"`
	Identidade             string `json:"contractIdentidade"`
	FuncionarioRua         string `json:"contractFuncionarioRua"`
	FuncionarioNumero      string `json:"contractFuncionarioNumero"`
	FuncionarioComplemento string `json:"contractFuncionarioComplemento"`
	FuncionarioBairro      string `json:"contractFuncionarioBairro"`
	FuncionarioCidade      string `json:"contractFuncionarioCidade"`
	FuncionarioUF          string `json:"contractFuncionarioUF"`
	FuncionarioCEP         string `json:"contractFuncionarioCEP"`

	Cargo          string `json:"contractCargo"`
	Setor          string `json:"contractSetor"`
	SalarioBruto   string `json:"contractSalarioBruto"`
	ValorExtenso   string `json:"contractValorExtenso"`
	DataAdmissao   string `json:"contractDataAdmissao"`
	CidadeAdmissao string `json:"contractCidadeAdmissao"`
}

// Payload maps the request onto the document template's flat field names,
// with composed addresses and locale-formatted date and salary.
func (r Request) Payload() map[string]string {
	companyAddress := fmt.Sprintf("%s, %s, %s - %s/%s, CEP: %s",
		r.Rua, r.Numero, r.Bairro, r.Cidade, r.UF, r.CEP)

	complement := ""
	if r.FuncionarioComplemento != "" {
		complement = ", " + r.FuncionarioComplemento
	}
	employeeAddress := fmt.Sprintf("%s, %s%s, %s - %s/%s, CEP: %s",
		r.FuncionarioRua, r.FuncionarioNumero, complement,
		r.FuncionarioBairro, r.FuncionarioCidade, r.FuncionarioUF, r.FuncionarioCEP)

	return map[string]string{
		"Razao_Social":         r.RazaoSocial,
		"endereco_filial":      companyAddress,
		"CNPJ":                 r.CNPJ,
		"representante_RH":     r.Representante,
		"CPF":                  r.RepCPF,
		"nome_completo":        r.NomeCompleto,
		"nacionalidade":        r.Nacionalidade,
		"estado_civil":         r.EstadoCivil,
		"cpf":                  r.CPF,
		"identidade":           r.Identidade,
		"endereco_colaborador": employeeAddress,
		"cargo":                r.Cargo,
		"setor":                r.Setor,
		"salario_bruto":        FormatCurrencyBR(r.SalarioBruto),
		"valor_extenso":        r.ValorExtenso,
		"data_admissao":        FormatDateBR(r.DataAdmissao),
		"Cidade":               r.Cidade,
		"UF":                   r.UF,
		"cidade_admissao":      r.CidadeAdmissao,
	}
}

// ErrNotConfigured means the API key or template ID is absent.
var ErrNotConfigured = errors.New("contract document service is not configured")

// APIError is a non-2xx answer from the document service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("document service returned status %d: %s", e.Status, e.Detail)
}

// TransportError wraps a connection-level failure to the document service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "document service unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the external PDF-template service.
type Client struct {
	APIKey     string
	TemplateID string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey, templateID, baseURL string) *Client {
	return &Client{
		APIKey:     apiKey,
		TemplateID: templateID,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.APIKey != "" && c.TemplateID != ""
}

// CreatePDF posts the field payload and returns the rendered document's
// download URL.
func (c *Client) CreatePDF(ctx context.Context, payload map[string]string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v2/create-pdf?template_id=%s", c.BaseURL, c.TemplateID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := string(raw)
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
			detail = parsed.Message
		}
		return "", &APIError{Status: resp.StatusCode, Detail: detail}
	}

	var result struct {
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	if result.DownloadURL == "" {
		return "", &APIError{Status: resp.StatusCode, Detail: "response carried no download_url"}
	}
	return result.DownloadURL, nil
}
