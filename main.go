package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/handler"
	"git.fiblab.net/sim/transit/reader"
	"git.fiblab.net/sim/transit/render"
	"git.fiblab.net/sim/transit/router"
	"git.fiblab.net/sim/transit/storage"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

var (
	// 配置信息，mongo_uri、listen、log-level、cache.path_ttl仅在显式给出时覆盖配置文件
	configPath  = flag.String("config", "", "yaml config file path (optional)")
	inputPath   = flag.String("input", "", "input document path, empty or - means stdin")
	outputPath  = flag.String("output", "", "output path, empty or - means stdout")
	basePathStr = flag.String("base", "", "base requests source, overrides the document [format: {fspath} or {db}.{col}]")
	savePathStr = flag.String("save", "", "store loaded base requests into mongo before processing [format: {db}.{col}]")
	mongoURI    = flag.String("mongo_uri", "", "mongo db uri")
	listen      = flag.String("listen", "localhost:52101", "http listening address")
	logLevel    = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	pathTTL     = flag.Duration("cache.path_ttl", 10*time.Minute, "path query cache ttl, 0 disables cache")
	serve       = flag.Bool("serve", false, "serve http api instead of batch processing")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "", "pprof listening address (empty means disable)")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg.applyFlags(flag.CommandLine)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	if level, ok := LOG_LEVELS[cfg.Log.Level]; ok {
		logrus.SetLevel(level)
	} else {
		log.Fatalf("invalid log level: %s", cfg.Log.Level)
	}

	doc, err := loadDocument(*inputPath, *serve || *benchmark)
	if err != nil {
		log.Fatalf("%v", err)
	}
	basePath, err := NewPath(*basePathStr)
	if err != nil {
		log.Fatalf("invalid base path: %v", err)
	}
	h, err := newHandler(cfg, doc, basePath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	if *benchmark {
		// 性能测试
		runBenchmark(h)
		return
	}
	if *serve {
		runServer(h, cfg.Server)
		return
	}

	responses := reader.Process(h, doc.StatRequests)
	if err := writeOutput(*outputPath, responses); err != nil {
		log.Fatalf("%v", err)
	}
}

// loadDocument 读取输入文档，服务模式下未指定输入时返回空文档
func loadDocument(path string, optional bool) (*reader.Document, error) {
	if path == "" && optional {
		return &reader.Document{}, nil
	}
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return reader.ReadDocument(r)
}

// newHandler 加载目录并构建路径规划器
func newHandler(cfg *AppConfig, doc *reader.Document, basePath *Path) (*handler.RequestHandler, error) {
	base, err := loadBaseRequests(cfg, doc, basePath)
	if err != nil {
		return nil, err
	}
	c := catalogue.New()
	if err := reader.FillCatalogue(c, base); err != nil {
		return nil, err
	}
	if *savePathStr != "" {
		if err := saveBaseRequests(cfg, *savePathStr, base); err != nil {
			return nil, err
		}
	}
	h := handler.New(c, render.New(doc.RenderSettings()), cfg.Cache.PathTTL)

	settings := doc.RoutingSettings()
	if settings == (router.Settings{}) {
		log.Infof("no routing settings in document, use %+v", cfg.Routing)
		settings = cfg.Routing
	}
	if err := h.BuildRouter(settings); err != nil {
		return nil, fmt.Errorf("failed to build router: %w", err)
	}
	return h, nil
}

func loadBaseRequests(cfg *AppConfig, doc *reader.Document, basePath *Path) ([]reader.BaseRequest, error) {
	switch {
	case basePath == nil:
		return doc.BaseRequests, nil
	case basePath.IsFile():
		f, err := os.Open(basePath.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open base %s: %w", basePath, err)
		}
		defer f.Close()
		baseDoc, err := reader.ReadDocument(f)
		if err != nil {
			return nil, err
		}
		return baseDoc.BaseRequests, nil
	default:
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		client, err := storage.NewClient(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		defer client.Disconnect(context.Background())
		return storage.LoadBaseRequests(ctx, client.Database(basePath.DB).Collection(basePath.Coll))
	}
}

// saveBaseRequests 将目录导入MongoDB，之后可通过 -base {db}.{col} 加载
func saveBaseRequests(cfg *AppConfig, dbDotColl string, base []reader.BaseRequest) error {
	savePath, err := NewPath(dbDotColl)
	if err != nil {
		return fmt.Errorf("invalid save path: %w", err)
	}
	if savePath.IsFile() {
		return fmt.Errorf("save path %s should be {db}.{col}", savePath)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	client, err := storage.NewClient(ctx, cfg.Mongo.URI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())
	return storage.SaveBaseRequests(ctx, client.Database(savePath.DB).Collection(savePath.Coll), base)
}

func writeOutput(path string, responses []any) error {
	if path == "" || path == "-" {
		return reader.WriteResponses(os.Stdout, responses)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := reader.WriteResponses(f, responses); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runServer(h *handler.RequestHandler, cfg ServerConfig) {
	s := newHTTPServer(h, cfg)

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	log.Info("transit closes")
}
