package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if !a.isConfigured() {
		return "(unconfigured)"
	}
	return fmt.Sprintf("(%s/%s)", a.config.Owner, a.config.ContentRepo)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to GitPress CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("gp %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: (f)eed, refresh, show <n>, post, essay, photos, upload <file>..., token [clear], status, exit")

		case "f", "feed", "list":
			a.list(ctx, false)
		case "refresh":
			a.list(ctx, true)
		case "show":
			a.show(args)
		case "post":
			a.postBlog(ctx)
		case "essay":
			a.postEssay(ctx)
		case "photos":
			a.postGallery(ctx)
		case "upload":
			a.upload(ctx, args)
		case "token":
			if len(args) > 0 && args[0] == "clear" {
				a.clearToken()
			} else {
				a.setToken()
			}
		case "status":
			a.status()
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
