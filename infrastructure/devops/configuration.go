package devops

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	hrmconfig "skyraksys.com/hrm/config"
)

// DBEntry is one database credential set stored in SSM as yaml, so
// deployments never carry passwords in their environment.
type DBEntry struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

var (
	once    sync.Once
	entry   *DBEntry
	loadErr error
)

// LoadDBConfig fetches the decrypted parameter once per process.
func LoadDBConfig(ctx context.Context, paramName string) (*DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed DBEntry
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		entry = &parsed
	})

	return entry, loadErr
}

// ApplyDBConfig overrides the local database settings with the SSM-held
// credentials when db.ssm_parameter is configured.
func ApplyDBConfig(ctx context.Context, dbCfg *hrmconfig.DatabaseConfig) error {
	if dbCfg.SSMParameter == "" {
		return nil
	}

	e, err := LoadDBConfig(ctx, dbCfg.SSMParameter)
	if err != nil {
		return err
	}

	dbCfg.Host = e.Host
	if e.Port != 0 {
		dbCfg.Port = e.Port
	}
	dbCfg.Name = e.Name
	dbCfg.User = e.Username
	dbCfg.Password = e.Password
	return nil
}
