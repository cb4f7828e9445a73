// Package auth conecta al personal con el backend de gestión: abre sesiones, emite el token del
// panel, recuerda credenciales por dispositivo y cierra sesión.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	"github.com/jhoicas/ascari-panel/internal/domain/repository"
	"github.com/jhoicas/ascari-panel/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// WorkspaceFactory crea el workspace de una sesión nueva a partir de su gateway.
type WorkspaceFactory func(gw ports.SessionGateway) *quote.Workspace

// AuthUseCase casos de uso de sesión: conectar, cerrar sesión y credenciales recordadas.
type AuthUseCase struct {
	connector      ports.Connector
	credRepo       repository.CredentialRepository // opcional
	registry       *Registry
	newWorkspace   WorkspaceFactory
	jwtCfg         JWTConfig
	refreshTimeout time.Duration
	defaults       entity.Credentials // URL y base propuestas en el formulario de conexión
	log            zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth. credRepo puede ser nil (sin "recordarme").
func NewAuthUseCase(
	connector ports.Connector,
	credRepo repository.CredentialRepository,
	registry *Registry,
	newWorkspace WorkspaceFactory,
	jwtCfg JWTConfig,
	refreshTimeout time.Duration,
	log zerolog.Logger,
) *AuthUseCase {
	if refreshTimeout <= 0 {
		refreshTimeout = time.Minute
	}
	return &AuthUseCase{
		connector:      connector,
		credRepo:       credRepo,
		registry:       registry,
		newWorkspace:   newWorkspace,
		jwtCfg:         jwtCfg,
		refreshTimeout: refreshTimeout,
		log:            log,
	}
}

// WithConnectDefaults backend y base de datos que se usan cuando el formulario llega sin ellos.
func (uc *AuthUseCase) WithConnectDefaults(url, db string) *AuthUseCase {
	uc.defaults = entity.Credentials{URL: strings.TrimSpace(url), DB: strings.TrimSpace(db)}
	return uc
}

// Connect autentica contra el backend, abre la sesión y devuelve el token del panel.
// Con RememberMe guarda las credenciales del dispositivo; sin él las olvida.
// El catálogo inicial se carga en segundo plano.
func (uc *AuthUseCase) Connect(ctx context.Context, in dto.ConnectRequest, deviceID string) (*dto.ConnectResponse, error) {
	creds := entity.Credentials{
		URL:      strings.TrimSpace(in.URL),
		DB:       strings.TrimSpace(in.DB),
		Username: strings.TrimSpace(in.Username),
		Password: strings.TrimSpace(in.Password),
	}
	if creds.URL == "" {
		creds.URL = uc.defaults.URL
	}
	if creds.DB == "" {
		creds.DB = uc.defaults.DB
	}
	if creds.URL == "" || creds.DB == "" || creds.Username == "" || creds.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleSales
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	conn, err := uc.connector.Connect(ctx, creds)
	if err != nil {
		uc.log.Warn().Err(err).Str("url", creds.URL).Str("db", creds.DB).Str("username", creds.Username).Msg("conexión al backend fallida")
		return nil, err
	}

	session := &Session{
		ID:            uuid.New().String(),
		Username:      creds.Username,
		Role:          role,
		UID:           conn.UID,
		BackendURL:    conn.BackendURL,
		ServerVersion: conn.ServerVersion,
		Gateway:       conn.Gateway,
		Workspace:     uc.newWorkspace(conn.Gateway),
		CreatedAt:     time.Now(),
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, session.ID, session.Username, session.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.registry.Put(session)

	creds.URL = conn.BackendURL
	uc.rememberOrForget(ctx, deviceID, in.RememberMe, creds)

	go func(ws *quote.Workspace) {
		rctx, cancel := context.WithTimeout(context.Background(), uc.refreshTimeout)
		defer cancel()
		_ = ws.RefreshCatalog(rctx)
	}(session.Workspace)

	uc.log.Info().Str("session", session.ID).Str("username", session.Username).Str("role", role).Str("backend", conn.BackendURL).Msg("sesión abierta")

	return &dto.ConnectResponse{
		Token:     token,
		ExpiresAt: session.CreatedAt.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      toSessionUser(session),
	}, nil
}

func (uc *AuthUseCase) rememberOrForget(ctx context.Context, deviceID string, remember bool, creds entity.Credentials) {
	if uc.credRepo == nil || deviceID == "" {
		return
	}
	if !remember {
		if err := uc.credRepo.Delete(ctx, deviceID); err != nil {
			uc.log.Error().Err(err).Str("device", deviceID).Msg("no se pudieron olvidar las credenciales")
		}
		return
	}
	rc := &entity.RememberedCredentials{DeviceID: deviceID, Credentials: creds, UpdatedAt: time.Now()}
	if err := uc.credRepo.Save(ctx, rc); err != nil {
		uc.log.Error().Err(err).Str("device", deviceID).Msg("no se pudieron recordar las credenciales")
	}
}

// Resolve valida el token y devuelve la sesión viva.
func (uc *AuthUseCase) Resolve(token string) (*Session, error) {
	sessionID, _, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.registry.Get(sessionID)
}

// Session devuelve la sesión por ID.
func (uc *AuthUseCase) Session(sessionID string) (*Session, error) {
	return uc.registry.Get(sessionID)
}

// Me datos de la sesión.
func (uc *AuthUseCase) Me(sessionID string) (*dto.SessionUser, error) {
	s, err := uc.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	u := toSessionUser(s)
	return &u, nil
}

// Logout cierra la sesión y olvida las credenciales del dispositivo.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID, deviceID string) error {
	uc.registry.Delete(sessionID)
	if uc.credRepo != nil && deviceID != "" {
		if err := uc.credRepo.Delete(ctx, deviceID); err != nil {
			return fmt.Errorf("olvidar credenciales: %w", err)
		}
	}
	uc.log.Info().Str("session", sessionID).Msg("sesión cerrada")
	return nil
}

// Remembered credenciales guardadas del dispositivo, sin la contraseña. Si no hay, devuelve
// el backend y la base configurados para precargar el formulario.
func (uc *AuthUseCase) Remembered(ctx context.Context, deviceID string) (*dto.RememberedResponse, error) {
	none := &dto.RememberedResponse{URL: uc.defaults.URL, DB: uc.defaults.DB}
	if uc.credRepo == nil || deviceID == "" {
		return none, nil
	}
	rc, err := uc.credRepo.GetByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return none, nil
	}
	return &dto.RememberedResponse{
		Remembered:  true,
		URL:         rc.Credentials.URL,
		DB:          rc.Credentials.DB,
		Username:    rc.Credentials.Username,
		HasPassword: rc.Credentials.Password != "",
	}, nil
}

// ConnectRemembered reconecta con las credenciales guardadas del dispositivo.
func (uc *AuthUseCase) ConnectRemembered(ctx context.Context, deviceID, role string) (*dto.ConnectResponse, error) {
	if uc.credRepo == nil || deviceID == "" {
		return nil, domain.ErrNotFound
	}
	rc, err := uc.credRepo.GetByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, domain.ErrNotFound
	}
	return uc.Connect(ctx, dto.ConnectRequest{
		URL:        rc.Credentials.URL,
		DB:         rc.Credentials.DB,
		Username:   rc.Credentials.Username,
		Password:   rc.Credentials.Password,
		Role:       role,
		RememberMe: true,
	}, deviceID)
}

// Sweep limpia sesiones expiradas.
func (uc *AuthUseCase) Sweep() int {
	return uc.registry.Sweep()
}

func toSessionUser(s *Session) dto.SessionUser {
	return dto.SessionUser{
		Username:      s.Username,
		Role:          s.Role,
		UID:           s.UID,
		BackendURL:    s.BackendURL,
		ServerVersion: s.ServerVersion,
	}
}
