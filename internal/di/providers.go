package di

import (
	"context"
	"fmt"
	"time"

	"FinDash/internal/domain/repository"
	domsvc "FinDash/internal/domain/service"
	"FinDash/internal/handler/api"
	internalrepo "FinDash/internal/repository"
	"FinDash/internal/scheduler"
	"FinDash/internal/service/market"
	"FinDash/internal/service/ratelimit"
	"FinDash/internal/service/telegram"
	"FinDash/internal/usecase"
	"FinDash/pkg/cache"
	pkgch "FinDash/pkg/clickhouse"
	"FinDash/pkg/config"
	xhttp "FinDash/pkg/http"
	pkgkafka "FinDash/pkg/kafka"
	applogger "FinDash/pkg/logger"
	"FinDash/pkg/metrics"
	"FinDash/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const digestJob = "digest"

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideHTTPClient creates the outbound client shared by the market sources.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Market.Timeout),
		xhttp.WithRetry(cfg.Market.Retries, 500*time.Millisecond),
		xhttp.WithUserAgent("Mozilla/5.0 (compatible; FinDash/1.0)"),
	)
}

func ProvidePriceSource(cfg *config.Config, client *xhttp.Client, m repository.Metrics, l *applogger.Logger) repository.PriceSource {
	return market.NewYahooSource(cfg.Market.ChartURL, cfg.Market.NumericSuffix, client, m, l)
}

func ProvideListingSource(cfg *config.Config, client *xhttp.Client, m repository.Metrics, l *applogger.Logger) repository.ListingSource {
	return market.NewListingClient(cfg.Market.ListingURL, client, m, l)
}

// ProvideCache creates the memory cache, or a memory L1 in front of Redis.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			cache.WithMemoryCleanup(cfg.Cache.MemoryCleanup),
		), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdle, 30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected", applogger.String("host", cfg.Cache.Redis.Host))
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredMemoryTTL(cfg.Market.CacheTTL),
	), nil
}

// ProvidePriceArchive connects ClickHouse and prepares the schema when enabled.
func ProvidePriceArchive(cfg *config.Config, l *applogger.Logger) (repository.PriceArchive, error) {
	if !cfg.ClickHouse.Enabled {
		return internalrepo.NoopArchive{}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, pkgch.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	l.Info("clickhouse connected", applogger.String("database", cfg.ClickHouse.Database))
	return internalrepo.NewCHPriceArchive(client, l), nil
}

// ProvideEventPublisher creates the Kafka publisher when enabled.
func ProvideEventPublisher(cfg *config.Config, reg *prometheus.Registry, m repository.Metrics, l *applogger.Logger) (repository.EventPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchTimeout(cfg.Kafka.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithAutoCreateTopic(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka producer ready", applogger.Strings("brokers", cfg.Kafka.Brokers), applogger.String("topic", cfg.Kafka.Topic))
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic, m), nil
}

// ProvideNotifier creates the Telegram notifier, or a disabled one.
func ProvideNotifier(cfg *config.Config, l *applogger.Logger) (domsvc.Notifier, error) {
	if !cfg.Telegram.Enabled {
		return telegram.Disabled(), nil
	}
	return telegram.New(telegram.Config{Token: cfg.Telegram.BotToken, ChatID: cfg.Telegram.ChatID}, l)
}

func ProvideRankStore(cfg *config.Config, l *applogger.Logger) repository.RankStore {
	return internalrepo.NewRankXMLStore(cfg.Storage.DataDir, l)
}

func ProvideHistoryStore(cfg *config.Config, l *applogger.Logger) repository.HistoryStore {
	return internalrepo.NewHistoryFileStore(cfg.Storage.DataDir, l)
}

func ProvideAnalyzeStore(cfg *config.Config, l *applogger.Logger) repository.AnalyzeStore {
	return internalrepo.NewAnalyzeFileStore(cfg.Storage.DataDir, l)
}

func ProvideScoreStore(cfg *config.Config, l *applogger.Logger) repository.ScoreStore {
	return internalrepo.NewScoreFileStore(cfg.Storage.DataDir, l)
}

func ProvideBarLoader(cfg *config.Config, prices repository.PriceSource, archive repository.PriceArchive, c cache.Service, l *applogger.Logger) *usecase.BarLoader {
	return usecase.NewBarLoader(prices, archive, c, cfg.Market.CacheTTL, l)
}

func ProvideForecaster(cfg *config.Config, bars *usecase.BarLoader, archive repository.PriceArchive, pub repository.EventPublisher, c cache.Service, m repository.Metrics, l *applogger.Logger) *usecase.Forecaster {
	return usecase.NewForecaster(bars, archive, pub, c, cfg.Market.CacheTTL, m, l)
}

func ProvideRanks(cfg *config.Config, store repository.RankStore, analyze repository.AnalyzeStore, pub repository.EventPublisher, c cache.Service, l *applogger.Logger) *usecase.Ranks {
	return usecase.NewRanks(store, analyze, pub, c, cfg.Cache.LockTTL, cfg.Storage.DefaultRegion, l)
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
}

func ProvideDigest(cfg *config.Config, f *usecase.Forecaster, bars *usecase.BarLoader, n domsvc.Notifier, l *applogger.Logger) *usecase.Digest {
	return usecase.NewDigest(f, bars, n, cfg.Scheduler.WatchSymbols, cfg.Scheduler.DigestTerm, l)
}

// ProvideScheduler registers the digest job when the scheduler is enabled.
func ProvideScheduler(cfg *config.Config, digest *usecase.Digest, l *applogger.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(5*time.Minute, l)
	if !cfg.Scheduler.Enabled {
		return s, nil
	}
	if err := s.Register(digestJob, cfg.Scheduler.DigestCron, digest); err != nil {
		return nil, err
	}
	return s, nil
}

// ProvideHTTPServer creates the Echo server with the dashboard routes.
func ProvideHTTPServer(cfg *config.Config, h *api.DashboardHandler, reg *prometheus.Registry, l *applogger.Logger) *xhttp.Server {
	return xhttp.NewServer([]xhttp.Handler{h},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithRegistry(reg),
		xhttp.WithLogger(l),
	)
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	sched *scheduler.Scheduler,
	c cache.Service,
	archive repository.PriceArchive,
	pub repository.EventPublisher,
	l *applogger.Logger,
) *server.App {
	return server.New(srv,
		[]server.Runner{sched},
		[]server.Closer{
			{Name: "cache", Close: c.Close},
			{Name: "archive", Close: archive.Close},
			{Name: "publisher", Close: pub.Close},
		},
		cfg.Server.ShutdownTimeout,
		l,
	)
}
