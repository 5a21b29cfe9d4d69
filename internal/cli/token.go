package cli

import (
	"fmt"
)

func (a *App) setToken() {
	token, err := GetToken()
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	if token == "" {
		fmt.Println("Empty token, nothing saved.")
		return
	}

	if err := a.creds.Set(token); err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	fmt.Println("Token saved.")
}

func (a *App) clearToken() {
	if err := a.creds.Delete(); err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	fmt.Println("Token removed.")
}

func (a *App) status() {
	fmt.Printf("Content repo: %s/%s (%s), feed dir %s\n",
		a.config.Owner, a.config.ContentRepo, a.config.Branch, a.config.FeedDir)
	fmt.Printf("Image repo:   %s/%s (%s), CDN mode %s\n",
		a.config.Owner, a.config.ImageRepo, a.config.ImageBranch, a.config.CDNMode)

	token, err := a.creds.Get()
	switch {
	case err != nil:
		fmt.Printf("Token:        unreadable (%v)\n", err)
	case token == "":
		fmt.Println("Token:        not set (use 'token')")
	default:
		fmt.Println("Token:        set")
	}

	if at := a.feed.LastFetchedAt(); !at.IsZero() {
		fmt.Printf("Last fetch:   %s\n", at.Local().Format("2006-01-02 15:04:05"))
	}
}
