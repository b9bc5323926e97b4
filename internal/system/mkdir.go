package system

import (
	"fmt"
	"os"
	"path/filepath"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/zoro11031/d3l/internal/common"
	"github.com/zoro11031/d3l/internal/logging"
)

// DefaultDirMode is rwxr-xr-x
const DefaultDirMode os.FileMode = 0755

// Outcome is the result of ensuring one checkpoint directory
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeExisted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeExisted:
		return "exists"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Segment records what happened to one checkpoint
type Segment struct {
	Path    string
	Outcome Outcome
	Err     error
}

// CreateReport lists every checkpoint of a CreateAll call, shallowest first
type CreateReport struct {
	Segments []Segment
}

func (r *CreateReport) filter(o Outcome) []string {
	var paths []string
	for _, s := range r.Segments {
		if s.Outcome == o {
			paths = append(paths, s.Path)
		}
	}
	return paths
}

// Created returns the checkpoints that were created by the call
func (r *CreateReport) Created() []string { return r.filter(OutcomeCreated) }

// Existed returns the checkpoints that were already present
func (r *CreateReport) Existed() []string { return r.filter(OutcomeExisted) }

// Failed returns the checkpoints that could not be created
func (r *CreateReport) Failed() []string { return r.filter(OutcomeFailed) }

// Err aggregates the failed checkpoints, or returns nil
func (r *CreateReport) Err() error {
	var result *multierror.Error
	for _, s := range r.Segments {
		if s.Outcome == OutcomeFailed {
			result = multierror.Append(result, s.Err)
		}
	}
	return result.ErrorOrNil()
}

// PathCreator ensures that every directory along a path exists
type PathCreator struct {
	dirs DirectoryManager
	log  logrus.FieldLogger
	mode os.FileMode
	root string
}

// PathCreatorOption configures a PathCreator
type PathCreatorOption func(*PathCreator)

// WithMode overrides DefaultDirMode
func WithMode(mode os.FileMode) PathCreatorOption {
	return func(p *PathCreator) {
		p.mode = mode
	}
}

// WithRoot resolves relative paths against root instead of the working directory
func WithRoot(root string) PathCreatorOption {
	return func(p *PathCreator) {
		p.root = root
	}
}

// NewPathCreator creates a PathCreator operating on dirs and logging to log
func NewPathCreator(dirs DirectoryManager, log logrus.FieldLogger, opts ...PathCreatorOption) *PathCreator {
	if log == nil {
		log = logging.Discard()
	}
	p := &PathCreator{
		dirs: dirs,
		log:  log,
		mode: DefaultDirMode,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Checkpoints returns the prefixes of path that CreateAll ensures, in order.
// A prefix ends at each '/' (inclusive) and at the final character.
func Checkpoints(path string) []string {
	var cps []string
	for pos := 0; pos < len(path); pos++ {
		if path[pos] == '/' || pos == len(path)-1 {
			cps = append(cps, path[:pos+1])
		}
	}
	return cps
}

// CreateAll scans path left to right and ensures every checkpoint directory
// exists, creating missing ones with the configured mode. A failure on one
// checkpoint does not stop the scan. The report lists every outcome; the
// returned error aggregates the failures and is nil when none failed.
func (p *PathCreator) CreateAll(path string) (*CreateReport, error) {
	if err := common.ValidatePath(path); err != nil {
		return nil, common.NewError(common.KindCreate, "create all", path, err)
	}

	report := &CreateReport{}
	for _, cp := range Checkpoints(path) {
		report.Segments = append(report.Segments, p.ensure(cp))
	}

	return report, report.Err()
}

func (p *PathCreator) ensure(cp string) Segment {
	target := cp
	if p.root != "" && !filepath.IsAbs(cp) {
		target = filepath.Join(p.root, cp)
	}
	log := p.log.WithField("path", cp)

	if isDir, err := p.dirs.DirectoryExists(target); err == nil && isDir {
		log.Info("directory already exists")
		return Segment{Path: cp, Outcome: OutcomeExisted}
	}

	if err := p.dirs.Mkdir(target, p.mode); err != nil {
		if common.IsKind(err, common.KindAlreadyExists) {
			// Lost a race with another creator, or the name is taken by a non-directory.
			if isDir, derr := p.dirs.DirectoryExists(target); derr == nil && isDir {
				log.Info("directory already exists")
				return Segment{Path: cp, Outcome: OutcomeExisted}
			}
			err = common.NewError(common.KindNotDirectory, "mkdir", target, err)
		}
		log.WithError(err).Error("can't create directory")
		return Segment{Path: cp, Outcome: OutcomeFailed, Err: common.NewError(common.KindCreate, "create all", cp, err)}
	}

	log.Info("directory has been created")
	return Segment{Path: cp, Outcome: OutcomeCreated}
}
