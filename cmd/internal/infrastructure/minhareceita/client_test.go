package minhareceita

import (
	"context"
	"farmregistry/cmd/internal/domain/entity"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetByCNPJ(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/11222333000181":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"cnpj": "11222333000181",
				"razao_social": "AGRO BOA VISTA LTDA",
				"nome_fantasia": "BOA VISTA",
				"municipio": "SORRISO",
				"uf": "mt",
				"cnae_fiscal_descricao": "Cultivo de soja",
				"descricao_situacao_cadastral": "ATIVA"
			}`))
		case "/99888777000166":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	company, err := client.GetByCNPJ(ctx, "11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", company.CNPJ)
	assert.Equal(t, "AGRO BOA VISTA LTDA", company.LegalName)
	assert.Equal(t, "MT", company.State)
	assert.Equal(t, entity.StatusActive, company.RegStatus)

	_, err = client.GetByCNPJ(ctx, "99888777000166")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetByCNPJ(ctx, "00000000000000")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestTranslateStatus(t *testing.T) {
	assert.Equal(t, entity.StatusActive, translateStatus("Ativa"))
	assert.Equal(t, entity.StatusClosed, translateStatus("BAIXADA"))
	assert.Equal(t, entity.StatusSuspended, translateStatus("suspensa"))
	assert.Equal(t, entity.StatusUnfit, translateStatus("INAPTA"))
	assert.Equal(t, entity.StatusUnknown, translateStatus("NULA"))
}
