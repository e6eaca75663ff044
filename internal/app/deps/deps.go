package deps

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medmate/internal/config"
	"medmate/internal/core/domain/family"
	dl "medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	drl "medmate/internal/core/domain/rate_limiter"
	"medmate/internal/core/domain/reminder"
	duow "medmate/internal/core/domain/unit_of_work"
	"medmate/internal/core/domain/user"
	dbfamily "medmate/internal/db/family"
	dbprescription "medmate/internal/db/prescription"
	dbreminder "medmate/internal/db/reminder"
	uow "medmate/internal/db/unit_of_work"
	dbuser "medmate/internal/db/user"
	"medmate/internal/implementations/calendar"
	"medmate/internal/implementations/email"
	"medmate/internal/implementations/logging"
	occurrenceclaimer "medmate/internal/implementations/occurrence_claimer"
	occurrencenotifier "medmate/internal/implementations/occurrence_notifier"
	passwordhasher "medmate/internal/implementations/password_hasher"
	ratelimiter "medmate/internal/implementations/rate_limiter"
	"medmate/internal/implementations/session"
	"medmate/internal/rabbitmq"
	occurrencepublisher "medmate/internal/rabbitmq/publishers/occurrence_publisher"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork               duow.UnitOfWork
	UserRepository           user.UserRepository
	SessionRepository        user.SessionRepository
	FamilyRepository         family.Repository
	PrescriptionRepository   prescription.Repository
	ReminderRepository       reminder.ReminderRepository
	AcknowledgmentRepository reminder.AcknowledgmentRepository

	RateLimiter drl.RateLimiter

	PasswordHasher            user.PasswordHasher
	UserSessionTokenGenerator user.SessionTokenGenerator

	OccurrenceClaimer   reminder.OccurrenceClaimer
	OccurrencePublisher reminder.OccurrencePublisher
	OccurrenceNotifier  reminder.OccurrenceNotifier
	CalendarExporter    reminder.CalendarExporter
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.FamilyRepository = dbfamily.NewPgxFamilyRepository(deps.DB)
	deps.PrescriptionRepository = dbprescription.NewPgxPrescriptionRepository(deps.DB)
	deps.ReminderRepository = dbreminder.NewPgxReminderRepository(deps.DB)
	deps.AcknowledgmentRepository = dbreminder.NewPgxAcknowledgmentRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.UserSessionTokenGenerator = session.NewUUID()

	deps.OccurrenceClaimer = occurrenceclaimer.NewRedis(deps.Redis, deps.Config.DispatchClaimTTL)
	closeOccurrencePublisher := deps.initRabbitmqOccurrencePublisher()
	deps.OccurrenceNotifier = deps.initOccurrenceNotifier()
	deps.CalendarExporter = calendar.NewICalExporter(deps.Config.CalendarHorizonDays)

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeOccurrencePublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqOccurrencePublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	exchange := deps.Config.RabbitmqOccurrenceExchange
	queue := deps.Config.RabbitmqOccurrenceDueQueue
	if err := rabbitmqChannel.DeclareDirectQueue(exchange, queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.OccurrencePublisher = occurrencepublisher.NewRabbitMQ(deps.Logger, rabbitmqChannel, exchange, queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down occurrence publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Occurrence publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initOccurrenceNotifier() reminder.OccurrenceNotifier {
	notifier := occurrencenotifier.New(deps.Logger).
		With("sse", occurrencenotifier.NewSSE(deps.SseServer))

	if !deps.Config.EmailEnabled {
		deps.Logger.Info(context.Background(), "E-mail notifications are disabled.")
		return notifier.With("email", email.NewDisabled())
	}
	return notifier.With("email", email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.SesMaxSendRate,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailReminderTemplate,
		deps.UserRepository,
		deps.FamilyRepository,
	))
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
