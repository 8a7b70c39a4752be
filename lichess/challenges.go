package lichess

// AcceptChallenge accepts a pending challenge by id. A challenge can be
// consumed exactly once; accepting one that expired or was withdrawn
// yields an APIError.
func (c *Client) AcceptChallenge(id string) error {
	return c.postAndDiscard("/api/challenge/" + id + "/accept")
}

func (c *Client) DeclineChallenge(id string) error {
	return c.postAndDiscard("/api/challenge/" + id + "/decline")
}
