// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// IniName is the profile file in the user's home directory. Each section is
// one named profile (catalogue instance plus file server credentials).
const IniName = ".scicat.ini"

// Viper keys of the profile fields.
const (
	KeyScicatURL          = "scicat_url"
	KeyScicatToken        = "scicat_access_token"
	KeyScicatUser         = "scicat_user"
	KeyScicatPassword     = "scicat_password"
	KeyScicatTimeout      = "scicat_timeout"
	KeyScicatSourceFolder = "scicat_source_folder"
	KeyAwsAccessKeyID     = "aws_access_key_id"
	KeyAwsSecretAccessKey = "aws_secret_access_key"
	KeyAwsSessionToken    = "aws_session_token"
	KeyAwsRegion          = "aws_region"
	KeyAwsEndpointURL     = "aws_endpoint_url"
	KeyS3Bucket           = "s3_bucket"
	CurrentProfileKey     = "current_profile"
	updatedProfileKey     = "updated_profile"
)

// Profile declares all profile keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive
type Profile struct {
	ScicatURL          string `vkey:"scicat_url"           env:"SCICAT_URL"            persist:"true"`
	ScicatAccessToken  string `vkey:"scicat_access_token"  env:"SCICAT_ACCESS_TOKEN"   persist:"true"  secret:"true"`
	ScicatUser         string `vkey:"scicat_user"          env:"SCICAT_USER"           persist:"true"`
	ScicatPassword     string `vkey:"scicat_password"      env:"SCICAT_PASSWORD"       persist:"true"  secret:"true"`
	ScicatTimeout      string `vkey:"scicat_timeout"       env:"SCICAT_TIMEOUT"        persist:"true"  default:"10s"`
	ScicatSourceFolder string `vkey:"scicat_source_folder" env:"SCICAT_SOURCE_FOLDER"  persist:"true"`
	AwsAccessKeyID     string `vkey:"aws_access_key_id"    env:"AWS_ACCESS_KEY_ID"     persist:"true"  secret:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" persist:"true" secret:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"    env:"AWS_SESSION_TOKEN"     persist:"true"  secret:"true"`
	AwsRegion          string `vkey:"aws_region"           env:"AWS_REGION"            persist:"true"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"     env:"AWS_ENDPOINT_URL"      persist:"true"`
	S3Bucket           string `vkey:"s3_bucket"            env:"S3_BUCKET"             persist:"true"`
	CurrentProfile     string `vkey:"current_profile"      env:"SCICAT_PROFILE"        persist:"false"`
}

func iniPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return home + string(os.PathSeparator) + IniName
}

func resolveProfileName(optional ...string) string {
	if len(optional) > 0 && optional[0] != "" {
		return optional[0]
	}
	return "default"
}

// BindEnvFromStruct binds every profile key to its environment variable and
// applies defaults.
func BindEnvFromStruct() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rt := reflect.TypeOf(Profile{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)
		if def := f.Tag.Get("default"); def != "" && !viper.IsSet(key) {
			viper.SetDefault(key, def)
		}
	}
}

// WriteIniFromStruct writes a new INI holding only keys marked persist:"true".
func WriteIniFromStruct(path, profile string) error {
	cfg := ini.Empty()
	cfg.Section("DEFAULT").Key(CurrentProfileKey).SetValue(profile)
	sec := cfg.Section(profile)

	rt := reflect.TypeOf(Profile{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	}
	return cfg.SaveTo(path)
}

// UpdateIniFromStruct updates or creates a profile section from current
// Viper values (persist:"true" keys only).
func UpdateIniFromStruct(path, profile string) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return WriteIniFromStruct(path, profile)
	}
	sec := cfg.Section(profile)

	rt := reflect.TypeOf(Profile{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	}
	if !cfg.Section("DEFAULT").HasKey(CurrentProfileKey) {
		cfg.Section("DEFAULT").Key(CurrentProfileKey).SetValue(profile)
	}
	sec.Key(updatedProfileKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return cfg.SaveTo(path)
}

// loadIniSectionIntoViper merges [DEFAULT] with the selected profile section
// and feeds the result to Viper. ENV still overrides on Get().
func loadIniSectionIntoViper(cfg *ini.File, profile string) error {
	def := cfg.Section("DEFAULT")
	selected := def
	if profile != "" && cfg.HasSection(profile) {
		selected = cfg.Section(profile)
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// RegisterIniProfile loads a profile into Viper:
// 1) bind ENV from the Profile struct (live)
// 2) load the INI, or bootstrap it from the environment when missing
// 3) load the active section and remember the profile name
func RegisterIniProfile(optional ...string) error {
	path := iniPath()

	BindEnvFromStruct()

	cfg, err := ini.Load(path)
	if err != nil {
		profile, bootErr := bootstrapFromEnv(path, optional...)
		if bootErr != nil {
			return bootErr
		}
		cfg, err = ini.Load(path)
		if err != nil {
			viper.Set(CurrentProfileKey, profile)
			return nil
		}
	}

	profile := resolveProfileName(optional...)
	if profile == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentProfileKey).String(); v != "" {
			profile = v
		}
	}

	if err := loadIniSectionIntoViper(cfg, profile); err != nil {
		return fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentProfileKey, profile)
	return nil
}

// bootstrapFromEnv builds the profile file from environment variables when no
// INI exists yet.
func bootstrapFromEnv(path string, optional ...string) (string, error) {
	rt := reflect.TypeOf(Profile{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		vkey := f.Tag.Get("vkey")
		if vkey == "" {
			continue
		}
		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(vkey, ".", "_"))
		}
		if val, ok := os.LookupEnv(env); ok {
			viper.Set(vkey, val)
			continue
		}
		if def := f.Tag.Get("default"); def != "" && !viper.IsSet(vkey) {
			viper.SetDefault(vkey, def)
		}
	}

	if viper.GetString(KeyScicatURL) == "" {
		return "", fmt.Errorf("missing %s: set SCICAT_URL or create %s", KeyScicatURL, IniName)
	}

	profile := resolveProfileName(optional...)
	viper.Set(CurrentProfileKey, profile)

	if err := WriteIniFromStruct(path, profile); err != nil {
		return "", fmt.Errorf("write ini failed: %w", err)
	}
	return profile, nil
}

// FromViper assembles a Config from the currently loaded profile.
func FromViper() Config {
	timeout, _ := time.ParseDuration(viper.GetString(KeyScicatTimeout))
	return Config{
		Catalogue: CatalogueConfig{
			BaseURL:     strings.TrimRight(viper.GetString(KeyScicatURL), "/"),
			AccessToken: Secret(viper.GetString(KeyScicatToken)),
			Username:    viper.GetString(KeyScicatUser),
			Password:    Secret(viper.GetString(KeyScicatPassword)),
			Timeout:     timeout,
		},
		S3: S3Config{
			AccessKey:           viper.GetString(KeyAwsAccessKeyID),
			SecretKey:           Secret(viper.GetString(KeyAwsSecretAccessKey)),
			SessionToken:        Secret(viper.GetString(KeyAwsSessionToken)),
			Region:              viper.GetString(KeyAwsRegion),
			EndpointURL:         viper.GetString(KeyAwsEndpointURL),
			Bucket:              viper.GetString(KeyS3Bucket),
			SourceFolderPattern: viper.GetString(KeyScicatSourceFolder),
		},
	}
}
