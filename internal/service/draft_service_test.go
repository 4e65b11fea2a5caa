package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type mockGenerator struct {
	text    string
	err     error
	prompts []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}

func draftReq() dto.DraftRequest {
	return dto.DraftRequest{
		Kind:        dto.DraftParentLetter,
		StudentName: "Ali Can",
		Points:      []string{"devamsızlık artışı", "veli görüşmesi planlandı"},
	}
}

func TestDraftGeneratesDocument(t *testing.T) {
	gen := &mockGenerator{text: "  Sayın Veli,\n\nOğlunuz hakkında...  "}
	svc := NewDraftService(gen, nil, nil, nil)

	draft, err := svc.Draft(context.Background(), draftReq())
	require.NoError(t, err)

	assert.Equal(t, dto.DraftParentLetter, draft.Kind)
	assert.Equal(t, "Veli Bilgilendirme Mektubu", draft.Title)
	assert.Equal(t, "Sayın Veli,\n\nOğlunuz hakkında...", draft.Text)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Ali Can")
	assert.Contains(t, gen.prompts[0], "devamsızlık artışı")
}

func TestDraftUnconfiguredGenerator(t *testing.T) {
	svc := NewDraftService(nil, nil, nil, nil)

	_, err := svc.Draft(context.Background(), draftReq())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrChannelUnavailable.Code, appErr.Code)
}

func TestDraftGeneratorFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("model overloaded")}
	svc := NewDraftService(gen, nil, nil, nil)

	_, err := svc.Draft(context.Background(), draftReq())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrChannelFailed.Code, appErr.Code)
}

func TestDraftInvalidKind(t *testing.T) {
	svc := NewDraftService(&mockGenerator{text: "x"}, nil, nil, nil)

	req := draftReq()
	req.Kind = "poem"
	_, err := svc.Draft(context.Background(), req)
	require.Error(t, err)
}

func TestDraftPDFRendersBytes(t *testing.T) {
	gen := &mockGenerator{text: "Sayın Veli,\n\nBilgilerinize sunarız."}
	svc := NewDraftService(gen, nil, nil, nil)

	pdf, err := svc.DraftPDF(context.Background(), draftReq())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
}
