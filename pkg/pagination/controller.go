package pagination

const DefaultItemsPerPage = 10

type Window struct {
	CurrentPage    int  `json:"currentPage"`
	ItemsPerPage   int  `json:"itemsPerPage"`
	TotalItems     int  `json:"totalItems"`
	TotalPages     int  `json:"totalPages"`
	StartIndex     int  `json:"startIndex"`
	EndIndex       int  `json:"endIndex"`
	StartItemIndex int  `json:"startItemIndex"`
	EndItemIndex   int  `json:"endItemIndex"`
	HasPrevious    bool `json:"hasPrevious"`
	HasNext        bool `json:"hasNext"`
}

// Controller navigates a bounded page range. Not safe for concurrent use.
type Controller struct {
	strategy       Strategy
	currentPage    int
	itemsPerPage   int
	defaultPerPage int
}

func NewController(defaultPerPage int) *Controller {
	if defaultPerPage < 1 {
		defaultPerPage = DefaultItemsPerPage
	}
	return &Controller{
		strategy:       LocalCount{},
		currentPage:    1,
		itemsPerPage:   defaultPerPage,
		defaultPerPage: defaultPerPage,
	}
}

func (c *Controller) CurrentPage() int {
	return c.currentPage
}

func (c *Controller) ItemsPerPage() int {
	return c.itemsPerPage
}

func (c *Controller) DefaultItemsPerPage() int {
	return c.defaultPerPage
}

func (c *Controller) TotalPages() int {
	return c.strategy.TotalPages(c.itemsPerPage)
}

// Observe replaces the strategy the page range is computed from. The current
// page is kept even when it now lies outside the range.
func (c *Controller) Observe(s Strategy) {
	if s == nil {
		s = LocalCount{}
	}
	c.strategy = s
}

// GoToPage moves to page n when 1 <= n <= TotalPages and reports whether it did.
func (c *Controller) GoToPage(n int) bool {
	if n < 1 || n > c.TotalPages() {
		return false
	}
	c.currentPage = n
	return true
}

func (c *Controller) NextPage() bool {
	return c.GoToPage(c.currentPage + 1)
}

func (c *Controller) PreviousPage() bool {
	return c.GoToPage(c.currentPage - 1)
}

// Seek sets the current page without checking the upper bound. Used when a
// page is restored before the data it refers to has arrived.
func (c *Controller) Seek(n int) {
	if n >= 1 {
		c.currentPage = n
	}
}

// SetItemsPerPage replaces the page size and returns to the first page.
// Sizes below 1 are ignored.
func (c *Controller) SetItemsPerPage(n int) bool {
	if n < 1 {
		return false
	}
	c.itemsPerPage = n
	c.currentPage = 1
	return true
}

// SetDefaultItemsPerPage updates the size ResetItemsPerPage restores, typically
// the limit declared by the backend.
func (c *Controller) SetDefaultItemsPerPage(n int) {
	if n >= 1 {
		c.defaultPerPage = n
	}
}

func (c *Controller) Reset() {
	c.currentPage = 1
}

func (c *Controller) ResetItemsPerPage() {
	c.itemsPerPage = c.defaultPerPage
	c.currentPage = 1
}

func (c *Controller) Window() Window {
	total := c.strategy.TotalItems()
	pages := c.TotalPages()
	start, end := c.strategy.Slice(c.currentPage, c.itemsPerPage)
	w := Window{
		CurrentPage:  c.currentPage,
		ItemsPerPage: c.itemsPerPage,
		TotalItems:   total,
		TotalPages:   pages,
		StartIndex:   start,
		EndIndex:     end,
		HasPrevious:  c.currentPage > 1 && c.currentPage-1 <= pages,
		HasNext:      c.currentPage < pages,
	}
	if total > 0 && c.currentPage <= pages {
		size := c.strategy.PageSize(c.itemsPerPage)
		w.StartItemIndex = (c.currentPage-1)*size + 1
		w.EndItemIndex = min(w.StartItemIndex+size-1, total)
	}
	return w
}
