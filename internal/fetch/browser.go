package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength marks static fetches that likely hit a JS-rendered page.
const MinContentLength = 200

// ShouldUseBrowser reports whether the extracted text is too thin to be a
// real posting body.
func ShouldUseBrowser(text string) bool {
	return len(text) < MinContentLength
}

// WithBrowser loads the URL in headless Chrome and returns the rendered HTML.
func WithBrowser(ctx context.Context, urlStr string, timeout time.Duration) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(DefaultUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("browser rendering failed after %s", timeout), Cause: err}
	}
	return html, nil
}
