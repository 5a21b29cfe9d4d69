package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gitpress/internal/content"
)

func (a *App) postBlog(ctx context.Context) {

	meta := content.Reset(content.KindBlog, time.Now())

	title, err := GetSimpleText(a.reader, "- Enter title")
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	meta.Title = title

	cats, err := GetSimpleText(a.reader, "- Enter categories, comma separated (Enter keeps the default)")
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	if cats != "" {
		meta.Categories = cats
	}

	body, err := GetMultiline(a.reader, "- Enter body (empty line to finish):")
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}

	a.doPublish(ctx, content.KindBlog, meta, body)
}

func (a *App) postEssay(ctx context.Context) {

	meta := content.Reset(content.KindEssay, time.Now())

	body, err := GetMultiline(a.reader, "- Enter essay text (empty line to finish):")
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}

	a.doPublish(ctx, content.KindEssay, meta, body)
}

func (a *App) postGallery(ctx context.Context) {

	meta := content.Reset(content.KindGallery, time.Now())

	body, err := GetMultiline(a.reader, "- Paste gallery JSON (empty line to finish):")
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}

	a.doPublish(ctx, content.KindGallery, meta, body)
}

func (a *App) doPublish(ctx context.Context, kind content.Kind, meta content.Metadata, body string) {
	res, err := a.publisher.Publish(ctx, kind, meta, body)
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}

	fmt.Printf("Published %s\n", res.FilePath)
	if res.URL != "" {
		fmt.Println(res.URL)
	}
}
