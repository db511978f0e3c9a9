package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"vibely/internal/adapter/api"
	"vibely/internal/adapter/api/handler"
	apimiddleware "vibely/internal/adapter/api/middleware"
	"vibely/internal/adapter/api/router"
	"vibely/internal/adapter/repository"
	"vibely/internal/infrastructure/firebase"
	"vibely/internal/infrastructure/storage"
	"vibely/internal/infrastructure/websocket"
	"vibely/internal/usecase"
	"vibely/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	postRepo := repository.NewFirestorePostRepository(firestoreClient)
	storyRepo := repository.NewFirestoreStoryRepository(firestoreClient)
	videoRepo := repository.NewFirestoreVideoRepository(firestoreClient)
	callRepo := repository.NewFirestoreCallRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo, storageClient)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, userRepo)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, storageClient)
	storyUseCase := usecase.NewStoryUseCase(storyRepo, userRepo, storageClient)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, userRepo, storageClient)
	callUseCase := usecase.NewCallUseCase(callRepo, userRepo)
	mediaUseCase := usecase.NewMediaUseCase(storageClient)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handlers := router.Handlers{
		Auth:  handler.NewAuthHandler(authUseCase),
		User:  handler.NewUserHandler(userUseCase),
		Chat:  handler.NewChatHandler(chatUseCase),
		Post:  handler.NewPostHandler(postUseCase),
		Story: handler.NewStoryHandler(storyUseCase),
		Call:  handler.NewCallHandler(callUseCase),
		Video: handler.NewVideoHandler(videoUseCase),
		Media: handler.NewMediaHandler(mediaUseCase),
		WebSocket: handler.NewWebSocketHandler(
			wsManager,
			authMiddleware,
			chatUseCase,
			postUseCase,
			storyUseCase,
			callUseCase,
			userUseCase,
		),
		Health: handler.NewHealthHandler(),
	}

	router.Setup(e, handlers, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
