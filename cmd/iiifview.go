package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"

	"iiifview/config"
	"iiifview/pkg/queue"
	"iiifview/pkg/version"
	"iiifview/router"
)

var (
	wg             sync.WaitGroup
	versionChecker = version.NewChecker(
		config.Version,
		"iiifview",
		"iiifview",
	)
)

func main() {
	ctx := context.Background()

	if !config.Init(ctx) {
		return
	}
	checkForUpdates()
	executeByRunMode(ctx)
}

type RunMode int

const (
	RunModeSingleURL RunMode = iota
	RunModeBatchURLs
	RunModeInteractive
)

func executeByRunMode(ctx context.Context) {
	switch determineRunMode() {
	case RunModeSingleURL:
		executeSingleURL(ctx, config.Conf.DUrl)
	case RunModeBatchURLs:
		executeBatchURLs()
	case RunModeInteractive:
		runInteractiveMode(ctx)
	}
	log.Println("Download complete.")
}

func determineRunMode() RunMode {
	if config.Conf.DUrl != "" {
		return RunModeSingleURL
	}
	if hasValidURLsFile() {
		return RunModeBatchURLs
	}
	return RunModeInteractive
}

func hasValidURLsFile() bool {
	f, err := os.Stat(config.Conf.UrlsFile)
	return err == nil && f.Size() > 0
}

func executeSingleURL(ctx context.Context, rawUrl string) {
	if err := processURL(ctx, rawUrl); err != nil {
		log.Println(err)
	}
}

func executeBatchURLs() {
	allUrls, err := loadAndFilterURLs(config.Conf.UrlsFile)
	if err != nil {
		log.Println(err)
		return
	}

	q := queue.NewConcurrentQueue(config.Conf.MaxConcurrent)
	for _, v := range allUrls {
		u, err := url.Parse(v)
		if err != nil {
			log.Printf("parse URL %s: %v\n", v, err)
			continue
		}
		wg.Add(1)
		rawURL := v
		host := u.Host
		q.Go(func() {
			defer wg.Done()
			if _, err := router.FactoryRouter(host, rawURL); err != nil {
				log.Println(err)
			}
		})
	}
	wg.Wait()
}

func runInteractiveMode(ctx context.Context) {
	for {
		rawUrl, err := readURLFromInput()
		if err != nil {
			break
		}
		if err = processURL(ctx, rawUrl); err != nil {
			log.Println(err)
		}
	}
}

func loadAndFilterURLs(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read URL file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(content), "\n") {
		sUrl := strings.TrimSpace(strings.Trim(line, "\r"))
		if isValidURL(sUrl) {
			urls = append(urls, sUrl)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no valid URLs in %s", filename)
	}
	return urls, nil
}

func isValidURL(url string) bool {
	return url != "" && strings.HasPrefix(url, "http")
}

func readURLFromInput() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Enter an URL:")
	fmt.Print("-> ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func processURL(ctx context.Context, rawUrl string) error {
	rawURL := strings.TrimSpace(rawUrl)
	if !isValidURL(rawURL) {
		return fmt.Errorf("invalid URL: %s", rawUrl)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if _, err = router.FactoryRouter(u.Host, rawURL); err != nil {
		return err
	}
	return nil
}

func checkForUpdates() {
	latestVersion, updateAvailable, err := versionChecker.CheckForUpdate()
	if err != nil {
		return
	}
	if updateAvailable {
		fmt.Printf("\nNew version available: %s (current: %s)\n\n", latestVersion, versionChecker.CurrentVersion)
	}
}
