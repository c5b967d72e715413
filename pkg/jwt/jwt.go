package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySecret se devuelve cuando no hay clave de firma configurada.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más los datos de sesión del colaborador.
// El nivel de acceso viaja en el token para que el middleware decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	EmployeeID  int64  `json:"colaborador_id"`
	Name        string `json:"nome"`
	AccessLevel string `json:"nivel_acesso"`
	RoleName    string `json:"cargo"`
}

// Session datos que se firman en el token.
type Session struct {
	EmployeeID  int64
	Name        string
	AccessLevel string
	RoleName    string
}

// Signer firma y valida tokens HS256.
type Signer struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewSigner crea un Signer. expMinutes <= 0 usa 60 minutos.
func NewSigner(secret, issuer string, expMinutes int) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if expMinutes <= 0 {
		expMinutes = 60
	}
	return &Signer{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: time.Duration(expMinutes) * time.Minute,
		now:        time.Now,
	}, nil
}

// Generate genera un token firmado con un jti nuevo. Devuelve también los claims emitidos.
func (s *Signer) Generate(sess Session) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", sess.EmployeeID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		EmployeeID:  sess.EmployeeID,
		Name:        sess.Name,
		AccessLevel: sess.AccessLevel,
		RoleName:    sess.RoleName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse valida firma, emisor y expiración y devuelve los claims.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.ID == "" || claims.EmployeeID == 0 {
		return nil, fmt.Errorf("claims incompletos")
	}
	return claims, nil
}
