package trelloapi

// Board is the subset of a Trello board's fields that the test suites inspect.
type Board struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Desc           string  `json:"desc"`
	Closed         bool    `json:"closed"`
	Pinned         bool    `json:"pinned"`
	IDOrganization *string `json:"idOrganization"`
	URL            string  `json:"url"`
	ShortURL       string  `json:"shortUrl"`
}

type List struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Closed  bool    `json:"closed"`
	IDBoard string  `json:"idBoard"`
	Pos     float64 `json:"pos"`
}

type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Desc        string `json:"desc"`
	Closed      bool   `json:"closed"`
	IDBoard     string `json:"idBoard"`
	IDList      string `json:"idList"`
	IsTemplate  bool   `json:"isTemplate"`
	DueComplete bool   `json:"dueComplete"`
	URL         string `json:"url"`
	ShortURL    string `json:"shortUrl"`
}

// Member is the authenticated user, as returned by GET /1/members/me.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}
