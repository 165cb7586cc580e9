package service

import (
	"context"
	"errors"
	"testing"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	books     *fakeBookRepo
	orders    *fakeOrderRepo
	users     *fakeUserRepo
	movements *fakeMovementRepo
	svc       *OrderService
}

func newFixture(t *testing.T) *orderFixture {
	t.Helper()

	books := newFakeBookRepo()
	orders := newFakeOrderRepo(books)
	users := newFakeUserRepo()
	movements := newFakeMovementRepo()
	return &orderFixture{
		books:     books,
		orders:    orders,
		users:     users,
		movements: movements,
		svc:       NewOrderService(books, orders, users, movements, zap.NewNop()),
	}
}

func (f *orderFixture) seedBook(t *testing.T, title string, quantity int) int {
	t.Helper()

	f.books.addAuthor(models.Author{AuthorID: 1, FirstName: "Ursula", LastName: "Le Guin"})
	f.books.addPublisher(models.Publisher{PublisherID: 1, Name: "Ace"})
	book := &models.Book{Title: title, Quantity: quantity, AuthorID: 1, PublisherID: 1, Price: 12.50}
	require.NoError(t, f.books.Create(context.Background(), book))
	return book.BookID
}

func (f *orderFixture) seedUser(t *testing.T) int {
	t.Helper()

	user := &models.User{FirstName: "Nora", LastName: "Webster", Email: "nora@example.com"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.UserID
}

func (f *orderFixture) quantity(t *testing.T, bookID int) int {
	t.Helper()

	book, err := f.books.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	return book.Quantity
}

func TestPlaceFirstOrderForBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))

	assert.Equal(t, 2, f.quantity(t, bookID))

	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, bookID, lines[0].BookID)
	assert.Equal(t, 1, lines[0].Copies)
	assert.Equal(t, "The Dispossessed", lines[0].Title)
	assert.Equal(t, "Ursula Le Guin", lines[0].AuthorName)

	has, err := f.svc.HasStandingOrder(ctx, userID)
	require.NoError(t, err)
	assert.True(t, has)

	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, models.MovementOutgoing, f.movements.movements[0].MovementType)
	assert.Equal(t, -1, f.movements.movements[0].Change)
}

func TestPlaceFirstOrderForBookOutOfStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 0)
	userID := f.seedUser(t)

	err := f.svc.PlaceFirstOrderForBook(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	// Nothing moved: no order, no line, quantity untouched.
	assert.Equal(t, 0, f.quantity(t, bookID))
	has, err := f.svc.HasStandingOrder(ctx, userID)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Empty(t, f.movements.movements)
}

func TestPlaceFirstOrderForBookUnknownBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.seedUser(t)

	err := f.svc.PlaceFirstOrderForBook(ctx, 42, userID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaceFirstOrderForBookUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)

	err := f.svc.PlaceFirstOrderForBook(ctx, bookID, 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 3, f.quantity(t, bookID))
}

func TestPlaceFirstOrderForBookTwiceRestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))
	require.Equal(t, 2, f.quantity(t, bookID))

	// The second attempt decrements stock, fails on the unique standing
	// order, and must compensate the decrement.
	err := f.svc.PlaceFirstOrderForBook(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Equal(t, 2, f.quantity(t, bookID))
}

func TestAddCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))
	require.NoError(t, f.svc.AddCopy(ctx, bookID, userID))

	assert.Equal(t, 1, f.quantity(t, bookID))
	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Copies)
}

func TestAddCopyWithoutLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.seedBook(t, "The Dispossessed", 3)
	second := f.seedBook(t, "The Left Hand of Darkness", 3)
	userID := f.seedUser(t)

	// No standing order at all.
	err := f.svc.AddCopy(ctx, first, userID)
	require.ErrorIs(t, err, repository.ErrLineNotFound)

	// Standing order exists but holds a different title.
	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, first, userID))
	err = f.svc.AddCopy(ctx, second, userID)
	require.ErrorIs(t, err, repository.ErrLineNotFound)
	assert.Equal(t, 3, f.quantity(t, second))
}

func TestAddCopyOutOfStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 1)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))
	require.Equal(t, 0, f.quantity(t, bookID))

	err := f.svc.AddCopy(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	// Line and shelf both unchanged.
	assert.Equal(t, 0, f.quantity(t, bookID))
	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Copies)
}

func TestAddNewTitleToExistingOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.seedBook(t, "The Dispossessed", 3)
	second := f.seedBook(t, "The Left Hand of Darkness", 2)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, first, userID))
	require.NoError(t, f.svc.AddNewTitleToExistingOrder(ctx, second, userID))

	assert.Equal(t, 1, f.quantity(t, second))
	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestAddNewTitleWithoutStandingOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	err := f.svc.AddNewTitleToExistingOrder(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrOrderNotFound)
	assert.Equal(t, 3, f.quantity(t, bookID))
}

func TestRemoveOneCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))
	require.NoError(t, f.svc.AddCopy(ctx, bookID, userID))
	require.Equal(t, 1, f.quantity(t, bookID))

	require.NoError(t, f.svc.RemoveOneCopy(ctx, bookID, userID))

	assert.Equal(t, 2, f.quantity(t, bookID))
	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Copies)
}

func TestRemoveOneCopyFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))

	// First removal empties the line and puts the copy back.
	require.NoError(t, f.svc.RemoveOneCopy(ctx, bookID, userID))
	assert.Equal(t, 3, f.quantity(t, bookID))

	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Removing from an already-empty line succeeds and still increments
	// the shelf; the line stays at zero.
	require.NoError(t, f.svc.RemoveOneCopy(ctx, bookID, userID))
	assert.Equal(t, 4, f.quantity(t, bookID))

	order, err := f.orders.GetStandingOrder(ctx, userID)
	require.NoError(t, err)
	line, err := f.orders.GetLine(ctx, order.OrderID, bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, line.Copies)
}

func TestRemoveOneCopyWithoutOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	err := f.svc.RemoveOneCopy(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrLineNotFound)
}

func TestOrderDispatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.seedBook(t, "The Dispossessed", 5)
	second := f.seedBook(t, "The Left Hand of Darkness", 5)
	userID := f.seedUser(t)

	// No standing order yet: creates one.
	require.NoError(t, f.svc.Order(ctx, first, userID))
	has, err := f.svc.HasStandingOrder(ctx, userID)
	require.NoError(t, err)
	require.True(t, has)

	// Same title again: bumps the line.
	require.NoError(t, f.svc.Order(ctx, first, userID))

	// Different title: appends a new line.
	require.NoError(t, f.svc.Order(ctx, second, userID))

	lines, err := f.svc.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	copies := map[int]int{}
	for _, l := range lines {
		copies[l.BookID] = l.Copies
	}
	assert.Equal(t, 2, copies[first])
	assert.Equal(t, 1, copies[second])
	assert.Equal(t, 3, f.quantity(t, first))
	assert.Equal(t, 4, f.quantity(t, second))
}

func TestListUserOrdersUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListUserOrders(context.Background(), 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHasStandingOrderAbsent(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t)

	has, err := f.svc.HasStandingOrder(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasAnyOrderForBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	has, err := f.svc.HasAnyOrderForBook(ctx, bookID)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))

	has, err = f.svc.HasAnyOrderForBook(ctx, bookID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOrderOpsIgnoreDeletedBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, bookID, userID))
	require.NoError(t, f.books.Delete(ctx, bookID))

	err := f.svc.AddCopy(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// The line is untouched by the rejected attempt.
	order, err := f.orders.GetStandingOrder(ctx, userID)
	require.NoError(t, err)
	line, err := f.orders.GetLine(ctx, order.OrderID, bookID)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Copies)
}

func TestOrderOpsIgnoreDeletedUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookID := f.seedBook(t, "The Dispossessed", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.users.Delete(ctx, userID))

	err := f.svc.PlaceFirstOrderForBook(ctx, bookID, userID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 3, f.quantity(t, bookID))

	_, err = f.svc.ListUserOrders(ctx, userID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddNewTitleCompensatesFailedLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.seedBook(t, "The Dispossessed", 3)
	second := f.seedBook(t, "The Left Hand of Darkness", 3)
	userID := f.seedUser(t)

	require.NoError(t, f.svc.PlaceFirstOrderForBook(ctx, first, userID))

	boom := errors.New("insert failed")
	f.orders.failAddLine = boom
	err := f.svc.AddNewTitleToExistingOrder(ctx, second, userID)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, f.quantity(t, second))
}
