package graphql

import (
	"context"
	"testing"

	"github.com/raywall/feedback-service/dyndb"
	"github.com/raywall/feedback-service/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) List(ctx context.Context, p feedback.Params) (*feedback.Page, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedback.Page), args.Error(1)
}

func TestExecute_Feedbacks(t *testing.T) {
	token, err := dyndb.ParseToken("eyJwayI6eyJTIjoiRkVFREJBQ0sifX0")
	require.NoError(t, err)

	lister := new(mockLister)
	lister.On("List", mock.Anything, feedback.Params{Urgency: "alta", PageSize: 2}).Return(&feedback.Page{
		Count: 2,
		Items: []feedback.Record{
			{"id": "01J", "nota": "5", "urgency": "alta", "descricao": nil},
			{"id": "01K", "urgency": "alta"},
		},
		NextToken: token,
		StartDate: feedback.DefaultStartDate,
		EndDate:   feedback.DefaultEndDate,
		Urgency:   "alta",
	}, nil)

	engine, err := NewGraphQLEngine(lister)
	require.NoError(t, err)

	result := engine.Execute(context.Background(),
		`query($u: String) { feedbacks(urgency: $u, pageSize: 2) { count nextToken urgency items { id nota descricao } } }`,
		map[string]interface{}{"u": "alta"})

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})["feedbacks"].(map[string]interface{})
	assert.Equal(t, 2, data["count"])
	assert.Equal(t, "eyJwayI6eyJTIjoiRkVFREJBQ0sifX0", data["nextToken"])
	assert.Equal(t, "alta", data["urgency"])

	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, map[string]interface{}{"id": "01J", "nota": "5", "descricao": nil}, items[0])
	assert.Equal(t, map[string]interface{}{"id": "01K", "nota": nil, "descricao": nil}, items[1])
	lister.AssertExpectations(t)
}

func TestExecute_UltimaPagina(t *testing.T) {
	lister := new(mockLister)
	lister.On("List", mock.Anything, feedback.Params{}).Return(&feedback.Page{Items: []feedback.Record{}}, nil)

	engine, err := NewGraphQLEngine(lister)
	require.NoError(t, err)

	result := engine.Execute(context.Background(), `{ feedbacks { count nextToken } }`, nil)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})["feedbacks"].(map[string]interface{})
	assert.Equal(t, 0, data["count"])
	assert.Nil(t, data["nextToken"])
}

func TestExecute_TokenInvalido(t *testing.T) {
	lister := new(mockLister)
	engine, err := NewGraphQLEngine(lister)
	require.NoError(t, err)

	result := engine.Execute(context.Background(), `{ feedbacks(nextToken: "%%%") { count } }`, nil)

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "invalid input")
	lister.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
