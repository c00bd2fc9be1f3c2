package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CaixaStatus represents the lifecycle state of a register session
type CaixaStatus int

const (
	CaixaStatusAberto  CaixaStatus = 0
	CaixaStatusFechado CaixaStatus = 1
)

func (s CaixaStatus) String() string {
	switch s {
	case CaixaStatusAberto:
		return "aberto"
	case CaixaStatusFechado:
		return "fechado"
	}
	return "desconhecido"
}

func (s CaixaStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CaixaStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CaixaStatus(i)
		return nil
	}
	switch str {
	case "aberto":
		*s = CaixaStatusAberto
	case "fechado":
		*s = CaixaStatusFechado
	}
	return nil
}

func (s CaixaStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CaixaStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CaixaStatusAberto
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CaixaStatus(v)
	case int:
		*s = CaixaStatus(v)
	}
	return nil
}
