package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/phillipyBr/Meu-Bolso/internal/category"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

func TestRegistry(t *testing.T) {
	tests := []struct {
		name        string
		ops         func(r *category.Registry) []bool
		wantIncome  []string
		wantExpense []string
		wantChanged []bool
	}{
		{
			name: "AddAppends",
			ops: func(r *category.Registry) []bool {
				return []bool{r.Add(transaction.TypeExpense, "Pets")}
			},
			wantIncome:  []string{"Salário", "Investimentos", "Outros"},
			wantExpense: []string{"Alimentação", "Moradia", "Transporte", "Lazer", "Saúde", "Educação", "Outros", "Pets"},
			wantChanged: []bool{true},
		},
		{
			name: "AddDuplicateIsNoop",
			ops: func(r *category.Registry) []bool {
				return []bool{r.Add(transaction.TypeIncome, "Salário")}
			},
			wantIncome:  []string{"Salário", "Investimentos", "Outros"},
			wantExpense: []string{"Alimentação", "Moradia", "Transporte", "Lazer", "Saúde", "Educação", "Outros"},
			wantChanged: []bool{false},
		},
		{
			name: "CaseSensitive",
			ops: func(r *category.Registry) []bool {
				return []bool{r.Add(transaction.TypeIncome, "salário")}
			},
			wantIncome:  []string{"Salário", "Investimentos", "Outros", "salário"},
			wantExpense: []string{"Alimentação", "Moradia", "Transporte", "Lazer", "Saúde", "Educação", "Outros"},
			wantChanged: []bool{true},
		},
		{
			name: "SameNameAcrossKinds",
			ops: func(r *category.Registry) []bool {
				return []bool{r.Add(transaction.TypeIncome, "Moradia")}
			},
			wantIncome:  []string{"Salário", "Investimentos", "Outros", "Moradia"},
			wantExpense: []string{"Alimentação", "Moradia", "Transporte", "Lazer", "Saúde", "Educação", "Outros"},
			wantChanged: []bool{true},
		},
		{
			name: "RemoveThenRemoveAgain",
			ops: func(r *category.Registry) []bool {
				return []bool{
					r.Remove(transaction.TypeExpense, "Lazer"),
					r.Remove(transaction.TypeExpense, "Lazer"),
				}
			},
			wantIncome:  []string{"Salário", "Investimentos", "Outros"},
			wantExpense: []string{"Alimentação", "Moradia", "Transporte", "Saúde", "Educação", "Outros"},
			wantChanged: []bool{true, false},
		},
		{
			name: "OutrosOnlyFromOneKind",
			ops: func(r *category.Registry) []bool {
				return []bool{r.Remove(transaction.TypeIncome, "Outros")}
			},
			wantIncome:  []string{"Salário", "Investimentos"},
			wantExpense: []string{"Alimentação", "Moradia", "Transporte", "Lazer", "Saúde", "Educação", "Outros"},
			wantChanged: []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := category.NewRegistry(category.Defaults())

			assert.Equal(t, tt.wantChanged, tt.ops(r))
			assert.Equal(t, tt.wantIncome, r.List(transaction.TypeIncome))
			assert.Equal(t, tt.wantExpense, r.List(transaction.TypeExpense))
		})
	}
}

func TestRegistry_ListIsCopy(t *testing.T) {
	r := category.NewRegistry(category.Defaults())

	list := r.List(transaction.TypeIncome)
	list[0] = "changed"

	assert.Equal(t, "Salário", r.List(transaction.TypeIncome)[0])
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		kind      transaction.Type
		category  string
		setupMock func(m *category.MockRepository)
		wantErr   error
		wantList  []string
	}

	tests := []testCase{
		{
			name:     "NewCategoryIsSaved",
			kind:     transaction.TypeIncome,
			category: "Freela",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					SaveCategories(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l category.Lists) error {
						assert.Equal(t, []string{"Salário", "Investimentos", "Outros", "Freela"}, l.Income)
						return nil
					})
			},
			wantList: []string{"Salário", "Investimentos", "Outros", "Freela"},
		},
		{
			name:     "DuplicateSkipsSave",
			kind:     transaction.TypeIncome,
			category: "Outros",
			wantList: []string{"Salário", "Investimentos", "Outros"},
		},
		{
			name:     "SaveErrorKeepsState",
			kind:     transaction.TypeIncome,
			category: "Freela",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().SaveCategories(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			wantErr:  errors.New("boom"),
			wantList: []string{"Salário", "Investimentos", "Outros"},
		},
		{
			name:     "UnknownKind",
			kind:     transaction.Type("transfer"),
			category: "Pix",
			wantErr:  category.ErrUnknownKind,
			wantList: []string{"Salário", "Investimentos", "Outros"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			repo.EXPECT().LoadCategories(gomock.Any()).Return(category.Defaults(), nil)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			require.NoError(t, svc.Load(context.Background()))

			err := svc.Add(context.Background(), tt.kind, tt.category)
			if tt.wantErr != nil {
				assert.Error(t, err)

				if errors.Is(tt.wantErr, category.ErrUnknownKind) {
					assert.ErrorIs(t, err, category.ErrUnknownKind)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantList, svc.List(transaction.TypeIncome))
		})
	}
}

func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	repo.EXPECT().LoadCategories(gomock.Any()).Return(category.Defaults(), nil)
	repo.EXPECT().SaveCategories(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := category.NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	require.NoError(t, svc.Remove(context.Background(), transaction.TypeExpense, "Saúde"))
	require.NoError(t, svc.Remove(context.Background(), transaction.TypeExpense, "Saúde"))

	assert.NotContains(t, svc.List(transaction.TypeExpense), "Saúde")
}
