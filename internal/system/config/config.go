/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type AdminConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	TokenSecret   string `yaml:"token_secret"`
	TokenAudience string `yaml:"token_audience"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type ConsentConfig struct {
	CookieName      string `yaml:"cookie_name"`
	CookieMaxAge    int    `yaml:"cookie_max_age"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

type AntiSpamConfig struct {
	MaxSubmissionsPerHour int  `yaml:"max_submissions_per_hour"`
	MinDwellSeconds       int  `yaml:"min_dwell_seconds"`
	MinMessageLength      int  `yaml:"min_message_length"`
	MaxMessageLength      int  `yaml:"max_message_length"`
	// SoftFailDatabaseErrors makes a generic backend/database failure look
	// like a success to the end user. Off unless a deployment opts in.
	SoftFailDatabaseErrors bool `yaml:"soft_fail_database_errors"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Admin      AdminConfig      `yaml:"admin"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Mongo      MongoConfig      `yaml:"mongodb"`
	Consent    ConsentConfig    `yaml:"consent"`
	AntiSpam   AntiSpamConfig   `yaml:"antispam"`
}
