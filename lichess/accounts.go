package lichess

import "net/http"

type Account struct {
	ID       string
	Username string
	Title    string

	Disabled bool

	CreatedAt int64
	SeenAt    int64
}

func (account *Account) IsBot() bool {
	return account.Title == "BOT"
}

// User identifies one side of a challenge or game.
type User struct {
	ID          string
	Name        string
	Title       string
	Rating      int
	Provisional bool
}

type Variant struct {
	Key  string
	Name string
}

func (c *Client) GetAccount() (*Account, error) {
	req, err := c.newRequest(http.MethodGet, "/api/account", nil)
	if err != nil {
		return nil, err
	}

	res := Account{}
	err = c.doJSONRequest(req, &res)
	return &res, err
}

func (c *Client) GetUser(username string) (*Account, error) {
	req, err := c.newRequest(http.MethodGet, "/api/user/"+username, nil)
	if err != nil {
		return nil, err
	}

	res := Account{}
	err = c.doJSONRequest(req, &res)
	return &res, err
}

// UpgradeToBot irreversibly turns the account into a bot account. It
// only succeeds on accounts that have not played any games yet.
func (c *Client) UpgradeToBot() error {
	return c.postAndDiscard("/api/bot/account/upgrade")
}
