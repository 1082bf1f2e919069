package service

import (
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/util"

	"gorm.io/gorm"
)

type SessionService struct {
	SessionRepo *repository.SessionRepository
	StudentRepo *repository.StudentRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository, studentRepo *repository.StudentRepository) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		StudentRepo: studentRepo,
	}
}

type SessionRequest struct {
	Name        string `json:"name" binding:"required"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

func (s *SessionService) Create(teacherID uint, req SessionRequest) (*model.GradingSession, error) {
	session := &model.GradingSession{
		TeacherID:   teacherID,
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      model.SessionDraft,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetOwned loads a session and verifies the caller owns it. Admins pass the
// ownership check.
func (s *SessionService) GetOwned(sessionID, teacherID uint, role model.UserRole) (*model.GradingSession, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.TeacherID != teacherID && role != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

func (s *SessionService) List(teacherID uint, page, limit int) ([]model.GradingSession, int64, error) {
	return s.SessionRepo.ListByTeacher(teacherID, page, limit)
}

func (s *SessionService) Update(session *model.GradingSession, req SessionRequest) error {
	session.Name = req.Name
	session.Subject = req.Subject
	session.Description = req.Description
	return s.SessionRepo.Update(session)
}

func (s *SessionService) Delete(sessionID uint) error {
	return s.SessionRepo.Delete(sessionID)
}

type StudentRequest struct {
	Name       string `json:"name" binding:"required"`
	ExternalID string `json:"externalId"`
}

func (s *SessionService) AddStudent(sessionID uint, req StudentRequest) (*model.Student, error) {
	student := &model.Student{
		SessionID:  sessionID,
		Name:       req.Name,
		ExternalID: req.ExternalID,
	}
	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *SessionService) ListStudents(sessionID uint) ([]model.Student, error) {
	return s.StudentRepo.ListBySession(sessionID)
}

func (s *SessionService) RemoveStudent(sessionID, studentID uint) error {
	err := s.StudentRepo.Delete(sessionID, studentID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrStudentNotFound
	}
	return err
}
