package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) upload(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: upload <file> [file ...]")
		return
	}

	items := make([][]byte, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("cannot read %s: %v\n", path, err)
			return
		}
		items = append(items, data)
	}

	res := a.uploader.UploadMany(ctx, items)

	fmt.Printf("Uploaded %d of %d\n", res.Succeeded, res.Requested)
	for _, url := range res.URLs {
		fmt.Printf("![](%s)\n", url)
	}
}
