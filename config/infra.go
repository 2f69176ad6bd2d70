package config

// InitInfra connects the optional backing services named in AppConfig.
// Each one is skipped when its address is empty.
func InitInfra() error {
	if err := initDB(); err != nil {
		return err
	}
	if err := initRedis(); err != nil {
		CloseInfra()
		return err
	}
	if err := initRabbit(); err != nil {
		CloseInfra()
		return err
	}
	return nil
}

func CloseInfra() {
	closeRabbit()
	closeRedis()
	closeDB()
}

// InitLikesBackend connects only the service likes.backend reads from.
// The file backend needs none.
func InitLikesBackend() error {
	switch AppConfig.Likes.Backend {
	case BackendRedis:
		return initRedis()
	case BackendMySQL:
		return initDB()
	}
	return nil
}
