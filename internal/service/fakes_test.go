package service

import (
	"context"
	"fmt"

	"bookstore-backend/internal/models"
	"bookstore-backend/internal/repository"
)

// In-memory doubles for the repository interfaces. They mirror the semantics
// of the SQL implementations: conditional stock decrement, line counters
// flooring at zero, one standing order per customer.

type fakeBookRepo struct {
	books      map[int]*models.Book
	authors    map[int]models.Author
	publishers map[int]models.Publisher
	categories map[int]models.Category
	bookCats   map[int][]int
	nextID     int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:      make(map[int]*models.Book),
		authors:    make(map[int]models.Author),
		publishers: make(map[int]models.Publisher),
		categories: make(map[int]models.Category),
		bookCats:   make(map[int][]int),
		nextID:     1,
	}
}

func (f *fakeBookRepo) addAuthor(a models.Author) {
	f.authors[a.AuthorID] = a
}

func (f *fakeBookRepo) addPublisher(p models.Publisher) {
	f.publishers[p.PublisherID] = p
}

func (f *fakeBookRepo) addCategoryDef(c models.Category) {
	f.categories[c.CategoryID] = c
}

func (f *fakeBookRepo) Create(ctx context.Context, b *models.Book) error {
	b.BookID = f.nextID
	f.nextID++
	copied := *b
	f.books[b.BookID] = &copied
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id int) (*models.Book, error) {
	b, ok := f.books[id]
	if !ok || b.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) view(b *models.Book) models.BookView {
	a := f.authors[b.AuthorID]
	p := f.publishers[b.PublisherID]
	return models.BookView{
		BookID:        b.BookID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Description:   b.Description,
		Year:          b.Year,
		Price:         b.Price,
		Pages:         b.Pages,
		Quantity:      b.Quantity,
		ImageURL:      b.ImageURL,
		AuthorName:    a.FirstName + " " + a.LastName,
		PublisherName: p.Name,
	}
}

func (f *fakeBookRepo) GetAll(ctx context.Context) ([]models.BookView, error) {
	var views []models.BookView
	for _, b := range f.books {
		if !b.IsDeleted {
			views = append(views, f.view(b))
		}
	}
	return views, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *models.Book) error {
	existing, ok := f.books[b.BookID]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	copied := *b
	f.books[b.BookID] = &copied
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int) error {
	b, ok := f.books[id]
	if !ok || b.IsDeleted {
		return repository.ErrNotFound
	}
	b.IsDeleted = true
	return nil
}

func (f *fakeBookRepo) GetByCategory(ctx context.Context, category string) ([]models.BookView, error) {
	var views []models.BookView
	for _, b := range f.books {
		if b.IsDeleted {
			continue
		}
		for _, catID := range f.bookCats[b.BookID] {
			if f.categories[catID].Name == category {
				views = append(views, f.view(b))
				break
			}
		}
	}
	return views, nil
}

func (f *fakeBookRepo) GetByAuthor(ctx context.Context, author string) ([]models.BookView, error) {
	var views []models.BookView
	for _, b := range f.books {
		if b.IsDeleted {
			continue
		}
		a := f.authors[b.AuthorID]
		if a.FirstName+" "+a.LastName == author {
			views = append(views, f.view(b))
		}
	}
	return views, nil
}

func (f *fakeBookRepo) GetByPublisher(ctx context.Context, publisher string) ([]models.BookView, error) {
	var views []models.BookView
	for _, b := range f.books {
		if b.IsDeleted {
			continue
		}
		if f.publishers[b.PublisherID].Name == publisher {
			views = append(views, f.view(b))
		}
	}
	return views, nil
}

func (f *fakeBookRepo) AddCategory(ctx context.Context, bookID, categoryID int) error {
	if _, ok := f.books[bookID]; !ok {
		return repository.ErrNotFound
	}
	f.bookCats[bookID] = append(f.bookCats[bookID], categoryID)
	return nil
}

func (f *fakeBookRepo) DecrementStock(ctx context.Context, id int) error {
	b, ok := f.books[id]
	if !ok || b.IsDeleted {
		return repository.ErrNotFound
	}
	if b.Quantity < 1 {
		return repository.ErrInsufficientStock
	}
	b.Quantity--
	return nil
}

func (f *fakeBookRepo) IncrementStock(ctx context.Context, id, change int) error {
	b, ok := f.books[id]
	if !ok || b.IsDeleted {
		return repository.ErrNotFound
	}
	b.Quantity += change
	return nil
}

type lineKey struct {
	orderID int
	bookID  int
}

type fakeOrderRepo struct {
	books       *fakeBookRepo
	orders      map[int]*models.Order
	lines       map[lineKey]*models.BookOrder
	nextOrderID int
	failCreate  error
	failAddLine error
}

func newFakeOrderRepo(books *fakeBookRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		books:       books,
		orders:      make(map[int]*models.Order),
		lines:       make(map[lineKey]*models.BookOrder),
		nextOrderID: 1,
	}
}

func (f *fakeOrderRepo) CreateForCustomer(ctx context.Context, customerID int) (*models.Order, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	for _, o := range f.orders {
		if o.CustomerID == customerID && !o.IsDeleted {
			return nil, fmt.Errorf("%w: customer already has a standing order", repository.ErrDuplicate)
		}
	}
	order := &models.Order{
		OrderID:    f.nextOrderID,
		CustomerID: customerID,
		Status:     models.OrderStatusAccepted,
	}
	f.nextOrderID++
	f.orders[order.OrderID] = order
	return order, nil
}

func (f *fakeOrderRepo) GetStandingOrder(ctx context.Context, customerID int) (*models.Order, error) {
	for _, o := range f.orders {
		if o.CustomerID == customerID && !o.IsDeleted {
			copied := *o
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) HasOrderForBook(ctx context.Context, bookID int) (bool, error) {
	for k, l := range f.lines {
		if k.bookID == bookID && !l.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) AddLine(ctx context.Context, orderID, bookID, copies int) error {
	if f.failAddLine != nil {
		return f.failAddLine
	}
	key := lineKey{orderID, bookID}
	if _, ok := f.lines[key]; ok {
		return fmt.Errorf("%w: line for this book already exists", repository.ErrDuplicate)
	}
	f.lines[key] = &models.BookOrder{OrderID: orderID, BookID: bookID, Copies: copies}
	return nil
}

func (f *fakeOrderRepo) GetLine(ctx context.Context, orderID, bookID int) (*models.BookOrder, error) {
	l, ok := f.lines[lineKey{orderID, bookID}]
	if !ok || l.IsDeleted {
		return nil, repository.ErrLineNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeOrderRepo) IncrementLineCopies(ctx context.Context, orderID, bookID int) error {
	l, ok := f.lines[lineKey{orderID, bookID}]
	if !ok || l.IsDeleted {
		return repository.ErrLineNotFound
	}
	l.Copies++
	return nil
}

func (f *fakeOrderRepo) DecrementLineCopies(ctx context.Context, orderID, bookID int) error {
	l, ok := f.lines[lineKey{orderID, bookID}]
	if !ok || l.IsDeleted {
		return repository.ErrLineNotFound
	}
	if l.Copies > 0 {
		l.Copies--
	}
	return nil
}

func (f *fakeOrderRepo) ListActiveLines(ctx context.Context, customerID int) ([]models.OrderLineView, error) {
	order, err := f.GetStandingOrder(ctx, customerID)
	if err != nil {
		return nil, nil
	}

	var views []models.OrderLineView
	for k, l := range f.lines {
		if k.orderID != order.OrderID || l.IsDeleted || l.Copies == 0 {
			continue
		}
		b := f.books.books[k.bookID]
		a := f.books.authors[b.AuthorID]
		views = append(views, models.OrderLineView{
			BookID:     b.BookID,
			Title:      b.Title,
			AuthorName: a.FirstName + " " + a.LastName,
			Price:      b.Price,
			ImageURL:   b.ImageURL,
			Copies:     l.Copies,
		})
	}
	return views, nil
}

type fakeAuthorRepo struct {
	authors map[int]*models.Author
	nextID  int
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[int]*models.Author), nextID: 1}
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *models.Author) error {
	a.AuthorID = f.nextID
	f.nextID++
	copied := *a
	f.authors[a.AuthorID] = &copied
	return nil
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id int) (*models.Author, error) {
	a, ok := f.authors[id]
	if !ok || a.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAuthorRepo) GetAll(ctx context.Context) ([]models.Author, error) {
	var out []models.Author
	for _, a := range f.authors {
		if !a.IsDeleted {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakePublisherRepo struct {
	publishers map[int]*models.Publisher
	nextID     int
}

func newFakePublisherRepo() *fakePublisherRepo {
	return &fakePublisherRepo{publishers: make(map[int]*models.Publisher), nextID: 1}
}

func (f *fakePublisherRepo) Create(ctx context.Context, p *models.Publisher) error {
	p.PublisherID = f.nextID
	f.nextID++
	copied := *p
	f.publishers[p.PublisherID] = &copied
	return nil
}

func (f *fakePublisherRepo) GetByID(ctx context.Context, id int) (*models.Publisher, error) {
	p, ok := f.publishers[id]
	if !ok || p.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePublisherRepo) GetAll(ctx context.Context) ([]models.Publisher, error) {
	var out []models.Publisher
	for _, p := range f.publishers {
		if !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[int]*models.Category
	nextID     int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int]*models.Category), nextID: 1}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	c.CategoryID = f.nextID
	f.nextID++
	copied := *c
	f.categories[c.CategoryID] = &copied
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	u.UserID = f.nextID
	f.nextID++
	copied := *u
	f.users[u.UserID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || u.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range f.users {
		if !u.IsDeleted {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	existing, ok := f.users[u.UserID]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	copied := *u
	f.users[u.UserID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	u, ok := f.users[id]
	if !ok || u.IsDeleted {
		return repository.ErrNotFound
	}
	u.IsDeleted = true
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email && !u.IsDeleted {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type ratingKey struct {
	userID int
	bookID int
}

type fakeRatingRepo struct {
	ratings map[ratingKey]*models.Rating
	nextID  int
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[ratingKey]*models.Rating), nextID: 1}
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, r *models.Rating) error {
	key := ratingKey{r.UserID, r.BookID}
	if existing, ok := f.ratings[key]; ok {
		existing.Value = r.Value
		r.RatingID = existing.RatingID
		return nil
	}
	r.RatingID = f.nextID
	f.nextID++
	copied := *r
	f.ratings[key] = &copied
	return nil
}

func (f *fakeRatingRepo) GetByUserAndBook(ctx context.Context, userID, bookID int) (*models.Rating, error) {
	r, ok := f.ratings[ratingKey{userID, bookID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRatingRepo) AverageForBook(ctx context.Context, bookID int) (float64, error) {
	var sum, count int
	for k, r := range f.ratings {
		if k.bookID == bookID {
			sum += r.Value
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

type fakeReviewRepo struct {
	reviews map[int]*models.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int]*models.Review), nextID: 1}
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *models.Review) error {
	r.ReviewID = f.nextID
	f.nextID++
	copied := *r
	f.reviews[r.ReviewID] = &copied
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id int) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok || r.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewRepo) GetByBook(ctx context.Context, bookID int) ([]models.Review, error) {
	var reviews []models.Review
	for _, r := range f.reviews {
		if r.BookID == bookID && !r.IsDeleted {
			reviews = append(reviews, *r)
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, r *models.Review) error {
	existing, ok := f.reviews[r.ReviewID]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.Body = r.Body
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id int) error {
	r, ok := f.reviews[id]
	if !ok || r.IsDeleted {
		return repository.ErrNotFound
	}
	r.IsDeleted = true
	return nil
}

type fakeMovementRepo struct {
	movements []models.StockMovement
	nextID    int
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{nextID: 1}
}

func (f *fakeMovementRepo) Record(ctx context.Context, m *models.StockMovement) error {
	m.MovementID = f.nextID
	f.nextID++
	f.movements = append(f.movements, *m)
	return nil
}

func (f *fakeMovementRepo) GetByBook(ctx context.Context, bookID int) ([]models.StockMovement, error) {
	var out []models.StockMovement
	for _, m := range f.movements {
		if m.BookID == bookID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) GetByOrder(ctx context.Context, orderID int) ([]models.StockMovement, error) {
	var out []models.StockMovement
	for _, m := range f.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}
