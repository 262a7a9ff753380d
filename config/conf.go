package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/ini.v1"
)

type Input struct {
	DUrl       string // single URL from the command line
	UrlsFile   string // batch input, one URL per line
	CookieFile string // Netscape cookie.txt for authenticated servers
	Seq        string // page range, e.g. 4:434
	SeqStart   int
	SeqEnd     int

	SaveFolder    string // download target, defaults to the working dir
	Format        string // IIIF image request URI, e.g. full/full/0/default.jpg
	UserAgent     string
	UseDzi        bool   // stitch tiles instead of asking for full images
	FileExt       string // extension for downloaded files
	Threads       int    // workers per stitched image
	MaxConcurrent int    // concurrent page downloads
	Retries       int
	Quality       int // JPEG encode quality
	Timeout       time.Duration

	// Viewer settings.
	MaxCacheItems int     // resident tile budget before pruning
	ThumbnailSize int     // page thumbnail long edge in pixels
	MinZoomScale  float64 // zoom-out limit in world units per pixel
	MinImageSize  float64 // smallest on-screen image long edge in pixels
	Language      string  // preferred label language

	Help    bool
	Version bool
}

// Init loads config.ini, overlays the command line flags and prepares
// the output directories. Returns false when the run should stop after
// printing help or the version.
func Init(ctx context.Context) bool {
	iniConf, _ := initINI()

	pflag.StringVarP(&Conf.UrlsFile, "input", "i", iniConf.UrlsFile, "file with URLs to fetch, one per line")
	pflag.StringVarP(&Conf.SaveFolder, "output", "o", iniConf.SaveFolder, "save downloads to this directory")
	pflag.StringVarP(&Conf.Seq, "sequence", "s", iniConf.Seq, "page range, e.g. 4:434")
	pflag.StringVar(&Conf.Format, "format", iniConf.Format, "IIIF image request URI, e.g. full/full/0/default.jpg")
	pflag.StringVar(&Conf.UserAgent, "user-agent", iniConf.UserAgent, "custom User-Agent header")
	pflag.BoolVar(&Conf.UseDzi, "dzi", iniConf.UseDzi, "stitch deep-zoom tiles instead of full images")
	pflag.StringVarP(&Conf.CookieFile, "cookie", "c", iniConf.CookieFile, "path to a cookie.txt file")
	pflag.StringVarP(&Conf.FileExt, "extension", "e", iniConf.FileExt, "downloaded file extension, e.g. .jpg")
	pflag.IntVar(&Conf.Threads, "threads", iniConf.Threads, "tile download workers per image")
	pflag.IntVar(&Conf.MaxConcurrent, "concurrent", iniConf.MaxConcurrent, "concurrent page downloads")
	pflag.IntVar(&Conf.Retries, "retries", iniConf.Retries, "download retry count")
	pflag.IntVar(&Conf.Quality, "quality", iniConf.Quality, "JPEG encode quality")
	pflag.DurationVar(&Conf.Timeout, "timeout", iniConf.Timeout, "request timeout")
	pflag.IntVar(&Conf.MaxCacheItems, "max-cache-items", iniConf.MaxCacheItems, "resident tile budget")
	pflag.IntVar(&Conf.ThumbnailSize, "thumbnail-size", iniConf.ThumbnailSize, "page thumbnail size in pixels")
	pflag.Float64Var(&Conf.MinZoomScale, "min-zoom-scale", iniConf.MinZoomScale, "zoom-out limit")
	pflag.Float64Var(&Conf.MinImageSize, "min-image-size", iniConf.MinImageSize, "smallest on-screen image size")
	pflag.StringVarP(&Conf.Language, "language", "l", iniConf.Language, "preferred label language")
	pflag.BoolVarP(&Conf.Help, "help", "h", false, "show help")
	pflag.BoolVarP(&Conf.Version, "version", "v", false, "show version")
	pflag.Parse()

	if Conf.Version {
		printVersion()
		return false
	}
	if Conf.Help {
		printHelp()
		return false
	}

	if arg := pflag.Arg(0); strings.HasPrefix(arg, "http") {
		Conf.DUrl = arg
	}
	if Conf.UrlsFile != "" && !strings.Contains(Conf.UrlsFile, string(os.PathSeparator)) {
		dir, _ := os.Getwd()
		Conf.UrlsFile = filepath.Join(dir, Conf.UrlsFile)
	}
	initSeqRange()

	_ = os.MkdirAll(Conf.SaveFolder, os.ModePerm)
	_ = os.MkdirAll(CacheDir(), os.ModePerm)
	return true
}

func initINI() (Input, error) {
	dir, err := os.Getwd()
	if err != nil {
		return Input{}, fmt.Errorf("get working directory: %w", err)
	}

	fPath, err := os.Executable()
	if err != nil {
		return Input{}, fmt.Errorf("get executable path: %w", err)
	}
	binDir := filepath.Dir(fPath)

	configPath, err := determineConfigPath(binDir)
	if err != nil {
		return Input{}, fmt.Errorf("determine config path: %w", err)
	}
	if err := CreateConfigIfNotExists(configPath); err != nil {
		return Input{}, fmt.Errorf("create config file: %w", err)
	}

	c := runtime.NumCPU() * 2
	io := Input{
		UrlsFile:      filepath.Join(dir, "urls.txt"),
		CookieFile:    filepath.Join(dir, "cookie.txt"),
		SaveFolder:    dir,
		Format:        defaultFormat,
		UserAgent:     defaultUserAgent,
		UseDzi:        true,
		FileExt:       defaultFileExtension,
		Threads:       8,
		MaxConcurrent: c,
		Retries:       defaultRetry,
		Quality:       defaultQuality,
		Timeout:       defaultTimeout,
		MaxCacheItems: defaultMaxCacheItems,
		ThumbnailSize: defaultThumbnailSize,
		MinZoomScale:  defaultMinZoomScale,
		MinImageSize:  defaultMinImageSize,
		Language:      defaultLanguage,
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, configPath)
	if err != nil {
		return Input{}, fmt.Errorf("load config file: %w", err)
	}
	updateConfigFromINI(cfg, &io, dir, c)
	return io, nil
}

func updateConfigFromINI(cfg *ini.File, io *Input, defaultDir string, defaultConcurrency int) {
	pathsSection := cfg.Section("paths")
	io.SaveFolder = pathsSection.Key("output").MustString(defaultDir)
	io.CookieFile = pathsSection.Key("cookie").MustString(io.CookieFile)
	io.UrlsFile = pathsSection.Key("input").MustString(io.UrlsFile)

	secDown := cfg.Section("download")
	io.FileExt = secDown.Key("extension").MustString(io.FileExt)
	io.Threads = secDown.Key("threads").MustInt(io.Threads)
	io.MaxConcurrent = secDown.Key("concurrent").MustInt(defaultConcurrency)
	io.Retries = secDown.Key("retries").MustInt(io.Retries)
	io.Timeout = secDown.Key("timeout").MustDuration(io.Timeout)
	io.Quality = secDown.Key("quality").MustInt(io.Quality)

	secCus := cfg.Section("custom")
	io.Seq = secCus.Key("sequence").String()
	io.UserAgent = secCus.Key("user-agent").MustString(io.UserAgent)

	secDzi := cfg.Section("dzi")
	io.UseDzi = secDzi.Key("dzi").MustBool(io.UseDzi)
	io.Format = secDzi.Key("format").MustString(io.Format)

	secViewer := cfg.Section("viewer")
	io.MaxCacheItems = secViewer.Key("max-cache-items").MustInt(io.MaxCacheItems)
	io.ThumbnailSize = secViewer.Key("thumbnail-size").MustInt(io.ThumbnailSize)
	io.MinZoomScale = secViewer.Key("min-zoom-scale").MustFloat64(io.MinZoomScale)
	io.MinImageSize = secViewer.Key("min-image-size").MustFloat64(io.MinImageSize)
	io.Language = secViewer.Key("language").MustString(io.Language)
}

// determineConfigPath picks the first existing config.ini, searching
// the working directory, the user config directory, the system config
// directory and finally next to the binary.
func determineConfigPath(binDir string) (string, error) {
	var possiblePaths []string

	if currentDir, err := os.Getwd(); err == nil {
		possiblePaths = append(possiblePaths, filepath.Join(currentDir, "config.ini"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "iiifview")
		if string(os.PathSeparator) == "\\" { // Windows
			configDir = filepath.Join(home, "iiifview")
		}
		possiblePaths = append(possiblePaths, filepath.Join(configDir, "config.ini"))
	}

	if string(os.PathSeparator) == "/" { // Unix-like
		possiblePaths = append(possiblePaths, filepath.Join("/", "etc", "iiifview", "config.ini"))
	} else {
		if appData := os.Getenv("APPDATA"); appData != "" {
			possiblePaths = append(possiblePaths, filepath.Join(appData, "iiifview", "config.ini"))
		}
	}

	possiblePaths = append(possiblePaths, filepath.Join(binDir, "config.ini"))

	for _, path := range possiblePaths {
		if fi, err := os.Stat(path); err == nil && fi.Size() > 0 {
			return path, nil
		}
	}

	// No config found anywhere, create one in the user config dir.
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "iiifview")
		if string(os.PathSeparator) == "\\" {
			configDir = filepath.Join(home, "iiifview")
		}
		if err := os.MkdirAll(configDir, 0755); err == nil {
			return filepath.Join(configDir, "config.ini"), nil
		}
	}
	return filepath.Join(binDir, "config.ini"), nil
}

func printHelp() {
	printVersion()
	fmt.Println(`Usage: iiifview [OPTION]... [URL]...`)
	pflag.PrintDefaults()
}

func printVersion() {
	fmt.Printf("iiifview v%s\n", Version)
}
