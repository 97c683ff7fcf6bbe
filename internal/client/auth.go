package client

import "context"

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp registers an operator and returns its id.
func (c *Client) SignUp(ctx context.Context, username, password string) (int, error) {
	var out struct {
		ID int `json:"id"`
	}
	resp, err := c.request(ctx).
		SetBody(credentials{Username: username, Password: password}).
		SetResult(&out).
		Post("/auth/sign-up")
	if err := check("sign up", resp, err); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// SignIn exchanges credentials for a bearer token. The token is not
// installed on c; build a new client with Config.Token to use it.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	resp, err := c.request(ctx).
		SetBody(credentials{Username: username, Password: password}).
		SetResult(&out).
		Post("/auth/sign-in")
	if err := check("sign in", resp, err); err != nil {
		return "", err
	}
	return out.Token, nil
}
