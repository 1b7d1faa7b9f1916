// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package supervisor provides process supervision for Sideline using suture v4.

The supervisor tree organizes long-running services into three layers:

	RootSupervisor ("sideline")
	├── StreamSupervisor ("stream-layer")
	│   └── PipelineService (enrichment router)
	├── SessionSupervisor ("session-layer")
	│   └── stream-worker:<session> (one per active session)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Session workers are
the exception: a worker that hits a fatal stream error returns
suture.ErrDoNotRestart and stays stopped until the viewer starts the
session again.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddStreamService(services.NewPipelineService(pipeline, 10*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(httpServer, 10*time.Second))

	ctrl, err := session.NewController(registry, source, launcher, tree.SessionHost(), cfg)

	errCh := tree.ServeBackground(ctx)

Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger.
*/
package supervisor
