package organization

type Department struct {
	ID          int64
	Name        string
	Description string
	HeadID      *int64
}
