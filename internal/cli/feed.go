package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) list(ctx context.Context, force bool) {
	posts, err := a.feed.Load(ctx, force)
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}

	if len(posts) == 0 {
		fmt.Println("No posts yet.")
		return
	}

	for i, p := range posts {
		line := p.Title
		if line == "" {
			line = p.Preview
		}
		fmt.Printf("%3d  %s  %s\n", i+1, p.PubDate.Format("2006-01-02 15:04"), line)
	}

	if at := a.feed.LastFetchedAt(); !at.IsZero() {
		fmt.Printf("Fetched at %s\n", at.Local().Format("2006-01-02 15:04:05"))
	}
}

func (a *App) show(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show <n>")
		return
	}

	posts := a.feed.Posts()
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(posts) {
		fmt.Printf("Pick a number between 1 and %d.\n", len(posts))
		return
	}

	p := posts[n-1]
	if p.Title != "" {
		fmt.Println(p.Title)
	}
	fmt.Println(p.PubDate.Format("2006-01-02 15:04:05"))
	if len(p.Categories) > 0 {
		fmt.Println(strings.Join(p.Categories, ", "))
	}
	fmt.Println()
	fmt.Println(p.Body)
}
