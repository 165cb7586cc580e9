package models

type Book struct {
	BookID      int     `json:"book_id"`
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Pages       int     `json:"pages"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
	AuthorID    int     `json:"author_id"`
	PublisherID int     `json:"publisher_id"`
	Deletable
}

type Author struct {
	AuthorID  int    `json:"author_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Deletable
}

type Publisher struct {
	PublisherID int    `json:"publisher_id"`
	Name        string `json:"name"`
	Deletable
}

type Category struct {
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
	Deletable
}

// BookView is the catalog projection returned to the web layer: the book
// plus its resolved author and publisher names.
type BookView struct {
	BookID        int     `json:"book_id"`
	ISBN          string  `json:"isbn"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Year          int     `json:"year"`
	Price         float64 `json:"price"`
	Pages         int     `json:"pages"`
	Quantity      int     `json:"quantity"`
	ImageURL      string  `json:"image_url"`
	AuthorName    string  `json:"author_name"`
	PublisherName string  `json:"publisher_name"`
}
