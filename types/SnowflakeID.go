package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// SnowflakeID disimpan sebagai BIGINT, dikirim ke frontend sebagai string
// supaya tidak kehilangan presisi di JavaScript.
type SnowflakeID int64

func ParseSnowflakeID(s string) (SnowflakeID, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake ID %q: %w", s, err)
	}
	return SnowflakeID(i), nil
}

func (s SnowflakeID) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s SnowflakeID) Value() (driver.Value, error) {
	return int64(s), nil
}

// Scan menerima int64 dari mssql/postgres dan []byte/string dari mysql/sqlite.
func (s *SnowflakeID) Scan(value interface{}) (err error) {
	switch v := value.(type) {
	case int64:
		*s = SnowflakeID(v)
	case []byte:
		*s, err = ParseSnowflakeID(string(v))
	case string:
		*s, err = ParseSnowflakeID(v)
	default:
		err = fmt.Errorf("cannot convert %T to SnowflakeID", value)
	}
	return err
}

func (s SnowflakeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SnowflakeID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := ParseSnowflakeID(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var num int64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid snowflake ID format")
	}
	*s = SnowflakeID(num)
	return nil
}
