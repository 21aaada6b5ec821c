package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"gorm.io/gorm"
)

// DocumentKind names a generated project document
type DocumentKind string

const (
	DocumentInvoice  DocumentKind = "invoice"
	DocumentProposal DocumentKind = "proposal"
)

// Document is a generated text document. Nothing about it is stored.
type Document struct {
	Kind          DocumentKind
	Project       *models.Project
	Text          string
	Date          string
	ProjectNumber string
}

// DocumentService builds invoice and proposal text for projects
type DocumentService struct {
	projectRepo repository.ProjectRepository
	access      *Access
	now         func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(projectRepo repository.ProjectRepository, access *Access) *DocumentService {
	return &DocumentService{
		projectRepo: projectRepo,
		access:      access,
		now:         time.Now,
	}
}

// Generate builds the document of kind for a project visible to user
func (s *DocumentService) Generate(ctx context.Context, user *models.User, projectID uint64, kind DocumentKind) (*Document, error) {
	actor, err := s.access.ActorFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireView(actor, authz.ProjectResource(authz.KindDocument, projectID)); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, projectID, "Client")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	var text string
	switch kind {
	case DocumentInvoice:
		text = invoiceText(project)
	case DocumentProposal:
		text = proposalText(project)
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}

	return &Document{
		Kind:          kind,
		Project:       project,
		Text:          text,
		Date:          s.now().Format("01/02/2006"),
		ProjectNumber: constants.DocumentProjectNumber,
	}, nil
}

func invoiceText(p *models.Project) string {
	client := "N/A"
	if p.Client != nil {
		client = p.Client.Name
	}
	description := p.Description
	if description == "" {
		description = "No description provided."
	}
	return fmt.Sprintf("Invoice for project '%s'\n\nClient: %s\nDescription: %s\nStatus: %s\n",
		p.Name, client, description, p.Status)
}

func proposalText(p *models.Project) string {
	client := "the client"
	if p.Client != nil {
		client = p.Client.Name
	}
	return fmt.Sprintf("Proposal for %s\n\n"+
		"This document outlines the proposed architectural services for %s. "+
		"The scope includes design coordination, site review, and documentation. "+
		"Fees and schedule to be confirmed upon client approval.",
		p.Name, client)
}
