package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/cart"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token     string
	redirects int
}

func (f *fakeTokens) RequireToken(context.Context) (string, bool) {
	if f.token == "" {
		f.redirects++
		return "", false
	}
	return f.token, true
}

type fakeRepo struct {
	mu sync.Mutex

	items   []model.CartItem
	listErr error
	mutErr  error

	// listHook, when set, supplies List results per call index.
	listHook func(call int) ([]model.CartItem, error)

	listCalls  int
	adds       []string
	updates    map[string]int
	deletes    []string
	seenTokens []string
}

func (f *fakeRepo) List(_ context.Context, token string) ([]model.CartItem, error) {
	f.mu.Lock()
	call := f.listCalls
	f.listCalls++
	f.seenTokens = append(f.seenTokens, token)
	hook, items, err := f.listHook, f.items, f.listErr
	f.mu.Unlock()

	if hook != nil {
		return hook(call)
	}
	if err != nil {
		return nil, err
	}
	return append([]model.CartItem(nil), items...), nil
}

func (f *fakeRepo) Add(_ context.Context, _ string, productID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return f.mutErr
	}
	f.adds = append(f.adds, productID)
	f.items = append(f.items, model.NewCartItem("c-"+productID, model.Product{ID: productID, Price: 1}, quantity))
	return nil
}

func (f *fakeRepo) UpdateQuantity(_ context.Context, _ string, cartItemID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return f.mutErr
	}
	if f.updates == nil {
		f.updates = map[string]int{}
	}
	f.updates[cartItemID] = quantity
	for i := range f.items {
		if f.items[i].CartItemID == cartItemID {
			f.items[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, _ string, cartItemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return f.mutErr
	}
	f.deletes = append(f.deletes, cartItemID)
	kept := f.items[:0]
	for _, item := range f.items {
		if item.CartItemID != cartItemID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func sampleItems() []model.CartItem {
	return []model.CartItem{
		model.NewCartItem("11", model.Product{ID: "p1", Name: "Shampoo", Price: 10.99, Status: "ECO"}, 2),
		model.NewCartItem("12", model.Product{ID: "p2", Name: "Toothbrush", Price: 3.99}, 1),
	}
}

func newCart(repo *fakeRepo, tokens *fakeTokens) cart.UseCase {
	return NewCartUseCase(repo, tokens, logger.NewNop())
}

func TestLoad_RendersProjection(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})

	require.NoError(t, uc.Load(context.Background()))

	v := uc.View()
	assert.Equal(t, "$25.97", v.Total)
	assert.Len(t, v.Lines, 2)
	assert.True(t, uc.Items()[0].IsEcoFriendly)
	assert.Equal(t, []string{"tok"}, repo.seenTokens)
}

func TestLoad_MissingTokenRedirects(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	tokens := &fakeTokens{}
	uc := newCart(repo, tokens)

	assert.NoError(t, uc.Load(context.Background()))
	added, err := uc.Add(context.Background(), model.Product{ID: "x"})
	assert.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, uc.Remove(context.Background(), "p1"))
	assert.NoError(t, uc.UpdateQuantity(context.Background(), "11", 3))

	assert.Equal(t, 4, tokens.redirects)
	assert.Zero(t, repo.listCalls)
	assert.Empty(t, repo.adds)
}

func TestLoad_FailureShowsErrorState(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))

	repo.mu.Lock()
	repo.listErr = apperror.NewStatusError(500, "Failed to fetch cart contents")
	repo.items = nil
	repo.mu.Unlock()

	err := uc.Load(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNetworkFailure))
	v := uc.View()
	assert.Equal(t, cart.MessageLoadFailed, v.Message)
	assert.Empty(t, v.Lines)
	assert.Empty(t, uc.Items())
}

func TestAdd_ReloadsAfterSuccess(t *testing.T) {
	repo := &fakeRepo{}
	uc := newCart(repo, &fakeTokens{token: "tok"})

	added, err := uc.Add(context.Background(), model.Product{ID: "123456789"})
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, []string{"123456789"}, repo.adds)
	assert.Equal(t, 1, repo.listCalls)
	require.Len(t, uc.Items(), 1)
}

func TestAdd_FailureSetsNotice(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))
	repo.mutErr = apperror.ErrNetworkFailure

	added, err := uc.Add(context.Background(), model.Product{ID: "x"})

	require.Error(t, err)
	assert.False(t, added)
	v := uc.View()
	assert.Equal(t, noticeAddFailed, v.Notice)
	assert.Len(t, v.Lines, 2, "current lines stay visible")
	assert.Equal(t, 1, repo.listCalls, "no reload after failure")
}

func TestUpdateQuantity_BelowOneIsSilentNoop(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	tokens := &fakeTokens{token: "tok"}
	uc := newCart(repo, tokens)
	require.NoError(t, uc.Load(context.Background()))
	before := uc.View()

	for _, q := range []int{0, -1} {
		require.NoError(t, uc.UpdateQuantity(context.Background(), "11", q))
	}

	assert.Empty(t, repo.updates)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, before, uc.View())
	assert.Zero(t, tokens.redirects)
}

func TestUpdateQuantity_ReloadsFromServer(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))

	require.NoError(t, uc.UpdateQuantity(context.Background(), "12", 3))

	assert.Equal(t, map[string]int{"12": 3}, repo.updates)
	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, "$33.95", uc.View().Total)
}

func TestUpdateQuantity_Failure(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))
	repo.mutErr = apperror.ErrNetworkFailure

	require.Error(t, uc.UpdateQuantity(context.Background(), "12", 3))
	assert.Equal(t, noticeUpdateFailed, uc.View().Notice)
	assert.Equal(t, 1, repo.listCalls)
}

func TestRemove_ResolvesCartItemFromProjection(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))

	require.NoError(t, uc.Remove(context.Background(), "p2"))

	assert.Equal(t, []string{"12"}, repo.deletes)
	require.Len(t, uc.Items(), 1)
	assert.Equal(t, "p1", uc.Items()[0].Product.ID)
}

func TestRemove_UnknownProductIsNoop(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))

	require.NoError(t, uc.Remove(context.Background(), "nope"))

	assert.Empty(t, repo.deletes)
	assert.Equal(t, 1, repo.listCalls)
}

func TestRemove_FailureKeepsProjection(t *testing.T) {
	repo := &fakeRepo{items: sampleItems()}
	uc := newCart(repo, &fakeTokens{token: "tok"})
	require.NoError(t, uc.Load(context.Background()))
	repo.mutErr = apperror.ErrNetworkFailure

	require.Error(t, uc.Remove(context.Background(), "p1"))

	assert.Len(t, uc.Items(), 2)
	assert.Equal(t, noticeRemoveFailed, uc.View().Notice)
	assert.Equal(t, 1, repo.listCalls)
}

func TestLoad_LastRequestWins(t *testing.T) {
	stale := []model.CartItem{model.NewCartItem("1", model.Product{ID: "old", Price: 1}, 1)}
	fresh := []model.CartItem{model.NewCartItem("2", model.Product{ID: "new", Price: 2}, 1)}

	entered := make(chan struct{})
	release := make(chan struct{})
	repo := &fakeRepo{
		listHook: func(call int) ([]model.CartItem, error) {
			if call == 0 {
				close(entered)
				<-release
				return stale, nil
			}
			return fresh, nil
		},
	}
	uc := newCart(repo, &fakeTokens{token: "tok"})

	firstDone := make(chan error)
	go func() { firstDone <- uc.Load(context.Background()) }()
	<-entered

	require.NoError(t, uc.Load(context.Background()))
	close(release)
	require.NoError(t, <-firstDone)

	items := uc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Product.ID)
	assert.Equal(t, "$2.00", uc.View().Total)
}
